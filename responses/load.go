// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package responses

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the responses file, both embedded and in an
// override directory.
const FileName = "responses.yaml"

//go:embed responses.yaml
var embeddedFS embed.FS

// Parse decodes a YAML mapping of template key to format string.
func Parse(data []byte) (Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse responses: %w", err)
	}
	if t == nil {
		t = Templates{}
	}
	return t, nil
}

// Load reads the responses file from dir, falling back to the embedded
// defaults when dir is blank or holds no responses file. The result is
// validated against RequiredKeys.
func Load(dir string) (Templates, error) {
	data, err := loadContent(dir)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadContent(dir string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, FileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return fs.ReadFile(embeddedFS, FileName)
}
