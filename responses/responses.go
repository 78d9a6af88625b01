// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package responses loads the response templates spoken by the action and
// renders them with positional arguments.
package responses

import (
	"errors"
	"fmt"
	"sort"
)

// Template keys used by the intent handlers.
const (
	Welcome          = "welcome"
	DidNotUnderstand = "didNotUnderstand"
	AskExample       = "askExample"
	LeadToExample    = "leadToExample"
	ExamplesList     = "examplesList"
)

// RequiredKeys lists every template key the intent handlers render.
var RequiredKeys = []string{
	Welcome,
	DidNotUnderstand,
	AskExample,
	LeadToExample,
	ExamplesList,
}

// ErrMissingTemplate is returned by Validate when a required key is absent.
var ErrMissingTemplate = errors.New("responses: missing template")

// Templates maps a template key to its format string.
type Templates map[string]string

// Validate reports the first required key, in sorted order, that has no
// template.
func (t Templates) Validate() error {
	keys := append([]string(nil), RequiredKeys...)
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := t[key]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingTemplate, key)
		}
	}
	return nil
}

// Render formats the template stored under key with args.
//
// Render panics if key is not defined. Templates returned by Load have
// already been validated against RequiredKeys.
func (t Templates) Render(key string, args ...string) string {
	pattern, ok := t[key]
	if !ok {
		panic(fmt.Sprintf("responses: template %q is not defined", key))
	}
	return Format(pattern, args...)
}
