// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package catalog holds the named SSML examples offered to users.
//
// Example names are spoken back to the user verbatim and SSML fragments
// are passed through untouched.
package catalog

import (
	"errors"
	"sort"
)

// ErrEmptyCatalog is returned when a catalog has no examples.
var ErrEmptyCatalog = errors.New("catalog: no examples defined")

// A Catalog is an immutable set of named SSML examples.
type Catalog struct {
	examples map[string]string
	names    []string
}

// New returns a Catalog holding a copy of examples.
func New(examples map[string]string) (*Catalog, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		examples: make(map[string]string, len(examples)),
		names:    make([]string, 0, len(examples)),
	}
	for name, ssml := range examples {
		c.examples[name] = ssml
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	return c, nil
}

// Lookup returns the SSML fragment for name.
func (c *Catalog) Lookup(name string) (string, bool) {
	ssml, ok := c.examples[name]
	return ssml, ok
}

// Names returns every example name in lexicographic order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of examples.
func (c *Catalog) Len() int {
	return len(c.names)
}
