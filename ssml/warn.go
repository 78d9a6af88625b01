// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package ssml

import "github.com/rs/zerolog"

// A Warner receives diagnostics about malformed request parameters.
type Warner interface {
	Warn(message string)
}

// ZerologWarner writes diagnostics to a zerolog.Logger at warn level.
type ZerologWarner struct {
	Logger zerolog.Logger
}

// Warn implements Warner.
func (w ZerologWarner) Warn(message string) {
	w.Logger.Warn().Msg(message)
}
