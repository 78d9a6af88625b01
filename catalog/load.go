// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the examples file, both embedded and in an
// override directory.
const FileName = "examples.yaml"

//go:embed examples.yaml
var embeddedFS embed.FS

// Parse decodes a YAML mapping of example name to SSML fragment.
func Parse(data []byte) (*Catalog, error) {
	var examples map[string]string
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse examples: %w", err)
	}
	return New(examples)
}

// Load reads the examples file from dir, falling back to the embedded
// catalog when dir is blank or holds no examples file.
func Load(dir string) (*Catalog, error) {
	if dir != "" {
		path := filepath.Join(dir, FileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return Parse(data)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	data, err := fs.ReadFile(embeddedFS, FileName)
	if err != nil {
		return nil, fmt.Errorf("read embedded examples: %w", err)
	}
	return Parse(data)
}
