// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package ssml

import (
	"strings"

	"github.com/actions-on-google/dialogflow-ssml-go/catalog"
	"github.com/actions-on-google/dialogflow-ssml-go/internal/metrics"
	"github.com/actions-on-google/dialogflow-ssml-go/responses"
	"github.com/rs/zerolog"
)

// A Handler answers intents from response templates and an example
// catalog. It holds no mutable state and is safe for concurrent use.
type Handler struct {
	templates responses.Templates
	examples  *catalog.Catalog
	warner    Warner
}

// NewHandler returns a Handler. The templates must define every key in
// responses.RequiredKeys. A nil warner discards diagnostics.
func NewHandler(templates responses.Templates, examples *catalog.Catalog, warner Warner) *Handler {
	if warner == nil {
		warner = ZerologWarner{Logger: zerolog.Nop()}
	}
	return &Handler{
		templates: templates,
		examples:  examples,
		warner:    warner,
	}
}

// Welcome greets the user and lists the available examples.
func (h *Handler) Welcome() *Response {
	askExample := h.templates.Render(responses.AskExample)

	return new(Response).
		addText(h.templates.Render(responses.Welcome, askExample)).
		addText(h.ExamplesList())
}

// Fallback tells the user they were not understood and lists the
// available examples.
func (h *Handler) Fallback() *Response {
	askExample := h.templates.Render(responses.AskExample)

	return new(Response).
		addText(h.templates.Render(responses.DidNotUnderstand, askExample)).
		addText(h.ExamplesList())
}

// ChooseExample introduces the named example and plays its SSML. Any
// element that is not a string naming a catalog example gets the Fallback
// response.
func (h *Handler) ChooseExample(element any) *Response {
	name, ok := element.(string)
	if !ok {
		h.warner.Warn("Expected parameter 'element' was null or not a String instance")
		metrics.FallbacksTotal.WithLabelValues("invalid_type").Inc()
		return h.Fallback()
	}

	example, ok := h.examples.Lookup(name)
	if !ok {
		h.warner.Warn(responses.Format("Value of ''element'' parameter was ''{0}'', not a valid example name", name))
		metrics.FallbacksTotal.WithLabelValues("unknown_example").Inc()
		return h.Fallback()
	}

	metrics.ExamplesServedTotal.WithLabelValues(name).Inc()
	return new(Response).
		addText(h.templates.Render(responses.LeadToExample, name)).
		addMarkup(example)
}

// ExamplesList renders the examplesList template with every example name
// but the last joined by ", ", and the last name on its own.
func (h *Handler) ExamplesList() string {
	names := h.examples.Names()
	last := len(names) - 1

	return h.templates.Render(responses.ExamplesList,
		strings.Join(names[:last], ", "),
		names[last])
}
