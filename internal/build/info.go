// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package build exposes build-time metadata injected via ldflags.
package build

// Version and Commit are set at build time by:
//
//	-ldflags "-X github.com/actions-on-google/dialogflow-ssml-go/internal/build.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
)
