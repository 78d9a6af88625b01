// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package responses

import (
	"strconv"
	"strings"
)

// Format substitutes args into pattern. A placeholder {n} is replaced with
// args[n]; placeholders without a matching argument are left as written.
//
// Single quotes follow the message format convention used by the response
// files: '' produces a literal quote and text between single quotes is
// copied without substitution, so '{0}' renders as {0}.
func Format(pattern string, args ...string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	quoted := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			quoted = !quoted
		case c == '{' && !quoted:
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				b.WriteString(pattern[i:])
				return b.String()
			}
			placeholder := pattern[i : i+end+1]
			n, err := strconv.Atoi(strings.TrimSpace(placeholder[1 : len(placeholder)-1]))
			if err != nil || n < 0 || n >= len(args) {
				b.WriteString(placeholder)
			} else {
				b.WriteString(args[n])
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
