// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortsNames(t *testing.T) {
	c, err := New(map[string]string{
		"speed":    "<speak>a</speak>",
		"emphasis": "<speak>b</speak>",
		"break":    "<speak>c</speak>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"break", "emphasis", "speed"}, c.Names())
	assert.Equal(t, 3, c.Len())

	ssml, ok := c.Lookup("speed")
	assert.True(t, ok)
	assert.Equal(t, "<speak>a</speak>", ssml)

	_, ok = c.Lookup("pitch")
	assert.False(t, ok)
}

func TestNewCopiesInput(t *testing.T) {
	examples := map[string]string{"speed": "<speak>a</speak>"}
	c, err := New(examples)
	require.NoError(t, err)

	examples["pitch"] = "<speak>b</speak>"
	_, ok := c.Lookup("pitch")
	assert.False(t, ok)

	names := c.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"speed"}, c.Names())
}

func TestNewEmpty(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	require.Greater(t, c.Len(), 1)
	for _, name := range c.Names() {
		ssml, ok := c.Lookup(name)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(ssml, "<speak>"), "example %q does not start with <speak>", name)
		assert.True(t, strings.HasSuffix(ssml, "</speak>"), "example %q does not end with </speak>", name)
	}
}

func TestLoadOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	data := `emphasis: "<speak><emphasis>hi</emphasis></speak>"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"emphasis"}, c.Names())
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("# nothing here\n"), 0644))

	_, err := Load(dir)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestEmbeddedAudioExampleNamesItsSound(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	ssml, ok := c.Lookup("audio")
	require.True(t, ok)
	assert.Contains(t, ssml, "bugle_tune.ogg")
	assert.NotContains(t, ssml, "bell")
	assert.True(t, strings.HasPrefix(ssml, "<speak>Here comes a bugle."))
	assert.Contains(t, ssml, "That was a bugle call.")
}
