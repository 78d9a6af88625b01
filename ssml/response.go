// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package ssml

import "strings"

// Kind identifies how a segment is spoken.
type Kind int

const (
	// PlainText is spoken and displayed as written.
	PlainText Kind = iota
	// MarkupSpeech is an SSML fragment passed to speech synthesis.
	MarkupSpeech
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "text"
	case MarkupSpeech:
		return "ssml"
	default:
		return "unknown"
	}
}

// A Segment is one item of a response.
type Segment struct {
	Kind Kind
	Text string
}

// A Response is the ordered list of segments returned for an intent.
type Response struct {
	Segments []Segment
}

func (r *Response) addText(text string) *Response {
	r.Segments = append(r.Segments, Segment{Kind: PlainText, Text: text})
	return r
}

func (r *Response) addMarkup(ssml string) *Response {
	r.Segments = append(r.Segments, Segment{Kind: MarkupSpeech, Text: ssml})
	return r
}

// Text joins the plain text segments with a space.
func (r *Response) Text() string {
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if s.Kind == PlainText {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Markup returns the SSML segments in order.
func (r *Response) Markup() []string {
	var markup []string
	for _, s := range r.Segments {
		if s.Kind == MarkupSpeech {
			markup = append(markup, s.Text)
		}
	}
	return markup
}
