// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fulfillment

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/dialogflow/v2"
)

const helloRequest = `{
  "responseId": "1",
  "session": "projects/p/agent/sessions/s",
  "queryResult": {
    "action": "input.hello",
    "intent": {"displayName": "Hello"}
  }
}`

func hello(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
	return &dialogflow.GoogleCloudDialogflowV2WebhookResponse{FulfillmentText: "Hello World!"}, nil
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	actions := NewActions()
	actions.Set("Hello", hello)

	rec := post(Handler(actions, zerolog.Nop()), helloRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dialogflow.GoogleCloudDialogflowV2WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello World!", resp.FulfillmentText)
}

func TestHandlerDispatchesByActionName(t *testing.T) {
	actions := NewActions()
	actions.Set("input.hello", hello)

	rec := post(Handler(actions, zerolog.Nop()), helloRequest)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerErrors(t *testing.T) {
	actions := NewActions()
	actions.Set("Hello", hello)
	actions.Set("Broken", func(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
		return nil, errors.New("broken")
	})
	h := Handler(actions, zerolog.Nop())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{"queryResult":`, http.StatusBadRequest},
		{"no query result", `{"responseId": "1"}`, http.StatusBadRequest},
		{"unknown intent", `{"queryResult": {"intent": {"displayName": "Goodbye"}}}`, http.StatusBadRequest},
		{"action error", `{"queryResult": {"intent": {"displayName": "Broken"}}}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(h, tt.body).Code)
		})
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Handler(NewActions(), zerolog.Nop()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBasicAuthHandler(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))

	actions := NewActions()
	actions.Set("Hello", hello)
	h := basicAuthHandler("dialogflow", hashed, zerolog.Nop(), Handler(actions, zerolog.Nop()))

	tests := []struct {
		name     string
		username string
		password string
		noAuth   bool
		want     int
	}{
		{name: "no credentials", noAuth: true, want: http.StatusUnauthorized},
		{name: "wrong username", username: "someone", password: "s3cret", want: http.StatusForbidden},
		{name: "wrong password", username: "dialogflow", password: "guess", want: http.StatusForbidden},
		{name: "valid", username: "dialogflow", password: "s3cret", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(helloRequest))
			if !tt.noAuth {
				req.SetBasicAuth(tt.username, tt.password)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestListenAndServeRequiresCredentials(t *testing.T) {
	s := NewServer(zerolog.Nop())
	require.ErrorIs(t, s.ListenAndServe(), ErrEmptyUsername)

	s = NewServer(zerolog.Nop())
	s.BasicAuthUsername = "dialogflow"
	require.ErrorIs(t, s.ListenAndServe(), ErrEmptyHashedPassword)

	s = NewServer(zerolog.Nop())
	s.BasicAuthUsername = "dialogflow"
	require.ErrorIs(t, s.ListenAndServeTLS("", ""), ErrEmptyHashedPassword)
}

func TestServerRoutes(t *testing.T) {
	s := NewServer(zerolog.Nop())
	s.Actions.Set("Hello", hello)

	for _, path := range []string{"/", "/webhook", "/dialogflow/fulfillment"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(helloRequest))
		rec := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "POST %s", path)
	}

	health := func() int {
		rec := httptest.NewRecorder()
		s.HealthServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec.Code
	}
	assert.Equal(t, http.StatusServiceUnavailable, health())
	s.SetStatus(http.StatusOK)
	assert.Equal(t, http.StatusOK, health())

	rec := httptest.NewRecorder()
	s.HealthServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ssml_fulfillment_requests_total")
}

func TestEnableBasicAuthWrapsOnce(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)

	s := NewServer(zerolog.Nop())
	s.Actions.Set("Hello", hello)
	s.BasicAuthUsername = "dialogflow"
	s.BasicAuthHashedPassword = hashed
	require.NoError(t, s.enableBasicAuth())

	// A second wrap would demand the new username in front of the old one.
	s.BasicAuthUsername = "someone-else"
	require.NoError(t, s.enableBasicAuth())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(helloRequest))
	req.SetBasicAuth("dialogflow", "s3cret")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
