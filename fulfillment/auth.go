// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fulfillment

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password, suitable for
// Server.BasicAuthHashedPassword.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("dialogflow/fulfillment: password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("dialogflow/fulfillment: hash password: %w", err)
	}
	return string(hashed), nil
}

// basicAuthHandler returns a request handler that authenicates each request it
// receives using the given username and hashedPassword.
func basicAuthHandler(username, hashedPassword string, logger zerolog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", "Basic")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if u != username {
			logger.Warn().Str("username", u).Msg("basic auth username mismatch")
			w.Header().Set("WWW-Authenticate", "Basic")
			w.WriteHeader(http.StatusForbidden)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(p)); err != nil {
			logger.Warn().Err(err).Str("username", u).Msg("basic auth password mismatch")
			w.Header().Set("WWW-Authenticate", "Basic")
			w.WriteHeader(http.StatusForbidden)
			return
		}

		h.ServeHTTP(w, r)
	})
}
