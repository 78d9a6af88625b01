// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fulfillment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/actions-on-google/dialogflow-ssml-go/internal/metrics"
	"github.com/rs/zerolog"
	"google.golang.org/api/dialogflow/v2"
)

// An ActionFunc processes a Dialogflow webhook request and returns a
// Dialogflow webhook response.
type ActionFunc func(*dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error)

// An Actions represents the supported actions of a fulfillment server,
// keyed by intent display name or action name.
type Actions map[string]ActionFunc

// NewActions returns a new, empty Actions map.
func NewActions() Actions {
	actions := make(map[string]ActionFunc)
	return actions
}

// Set sets the ActionFunc entry associated with name.
// It replaces any existing value associated with name.
func (a Actions) Set(name string, fn ActionFunc) {
	a[name] = fn
}

// Lookup returns the ActionFunc for the query result of q. The intent
// display name is tried first, then the action name.
func (a Actions) Lookup(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (string, ActionFunc, bool) {
	if q == nil || q.QueryResult == nil {
		return "", nil, false
	}
	if q.QueryResult.Intent != nil && q.QueryResult.Intent.DisplayName != "" {
		name := q.QueryResult.Intent.DisplayName
		if fn, ok := a[name]; ok {
			return name, fn, true
		}
	}
	name := q.QueryResult.Action
	fn, ok := a[name]
	return name, fn, ok
}

type handler struct {
	actions Actions
	logger  zerolog.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to read request body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body.Close()

	var webhookRequest dialogflow.GoogleCloudDialogflowV2WebhookRequest
	if err := json.Unmarshal(body, &webhookRequest); err != nil {
		h.logger.Warn().Err(err).Msg("failed to decode webhook request")
		metrics.RequestsTotal.WithLabelValues("", "bad_request").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if webhookRequest.QueryResult == nil {
		h.logger.Warn().Str("response_id", webhookRequest.ResponseId).Msg("webhook request has no query result")
		metrics.RequestsTotal.WithLabelValues("", "bad_request").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name, fn, ok := h.actions.Lookup(&webhookRequest)
	if !ok {
		h.logger.Warn().Str("action", name).Msg("action not supported")
		metrics.RequestsTotal.WithLabelValues("", "unsupported").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("action", name).
		Str("session", webhookRequest.Session).
		Msg("invoking action")

	response, err := fn(&webhookRequest)
	if err != nil {
		h.logger.Error().Err(err).Str("action", name).Msg("action failed")
		metrics.RequestsTotal.WithLabelValues(name, "error").Inc()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	data, err := json.MarshalIndent(response, "", " ")
	if err != nil {
		h.logger.Error().Err(err).Str("action", name).Msg("failed to encode webhook response")
		metrics.RequestsTotal.WithLabelValues(name, "error").Inc()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	metrics.RequestsTotal.WithLabelValues(name, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Handler returns a handler that processes Dialogflow fulfillment requests
// using the given actions.
func Handler(actions Actions, logger zerolog.Logger) http.Handler {
	return &handler{actions: actions, logger: logger}
}
