// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fulfillment

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/acme/autocert"
)

// ErrEmptyHashedPassword is returned from ListenAndServe and ListenAndServeTLS when basic
// authentication is required and the hashed password is empty.
var ErrEmptyHashedPassword = errors.New("dialogflow/fulfillment: basic auth hashed password is empty")

// ErrEmptyUsername is returned from ListenAndServe and ListenAndServeTLS when basic
// authentication is required and the username is empty.
var ErrEmptyUsername = errors.New("dialogflow/fulfillment: basic auth username is empty")

// DefaultCacheDirectory is the default directory to use when caching
// certificates from Let's Encrypt.
var DefaultCacheDirectory = "/var/lib/dialogflow/fulfillment"

// A Server defines parameters for running a fulfillment server.
//
// A Server must be initialized with NewServer before use.
type Server struct {
	// ACMEHTTPChallengeServer holds the ACME HTTP challenge server.
	ACMEHTTPChallengeServer *http.Server

	// Actions used by fulfillment handler.
	Actions Actions

	// AutocertCache specifies an optional autocert.Cache implementation used
	// to store and retrieve previously obtained Let's Encrypt certificates as
	// opaque data.
	//
	// If AutocertCache is nil, autocert.DirCache will be used.
	AutocertCache autocert.Cache

	// BasicAuthUsername specifies the basic authentication username used
	// to authenticate fulfillment requests.
	BasicAuthUsername string

	// BasicAuthHashedPassword specifies the basic authentication hashed
	// password used to authenticate fulfillment requests.
	//
	// BasicAuthHashedPassword must be hashed using bcrypt.
	BasicAuthHashedPassword string

	// CacheDirectory specifies an optional directory to use when caching
	// certificates from Let's Encrypt.
	CacheDirectory string

	// Domain specifies an optional fully qualifed domain used when generating
	// certificates from Let's Encrypt. If Domain is not blank, Let's Encrypt
	// is enabled automatically.
	Domain string

	// DisableBasicAuth, if true, basic authentication is disabled for fulfillment
	// requests.
	//
	// If DisableBasicAuth is false, BasicAuthUsername and BasicAuthHashedPassword
	// must be set and non-empty. Defaults to false.
	DisableBasicAuth bool

	// HealthServer holds the health server. It also serves Prometheus
	// metrics on /metrics.
	HealthServer *http.Server

	logger           zerolog.Logger
	autocertManager  *autocert.Manager
	status           atomic.Int32
	basicAuthEnabled bool

	*http.Server
}

// NewServer initializes and returns a new Server.
func NewServer(logger zerolog.Logger) *Server {
	s := &Server{logger: logger}
	s.Actions = NewActions()

	s.ACMEHTTPChallengeServer = &http.Server{}

	fulfillment := chi.NewRouter()
	fulfillment.Use(middleware.RealIP)
	fulfillment.Use(middleware.Recoverer)
	fulfillment.Handle("/*", Handler(s.Actions, logger))
	s.Server = &http.Server{Handler: fulfillment}

	health := chi.NewRouter()
	health.Get("/health", s.healthHandler)
	health.Handle("/metrics", promhttp.Handler())
	s.HealthServer = &http.Server{Handler: health}

	return s
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := s.Status()
	if status == 0 {
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)
}

// enableBasicAuth wraps the fulfillment handler with basic authentication
// unless it has been disabled. The handler is wrapped at most once.
func (s *Server) enableBasicAuth() error {
	if s.DisableBasicAuth || s.basicAuthEnabled {
		return nil
	}
	if s.BasicAuthUsername == "" {
		return ErrEmptyUsername
	}
	if s.BasicAuthHashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	s.Server.Handler = basicAuthHandler(s.BasicAuthUsername, s.BasicAuthHashedPassword, s.logger, s.Server.Handler)
	s.basicAuthEnabled = true
	return nil
}

func (s *Server) serveHealth() {
	go func() {
		if err := s.HealthServer.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return
			}
			s.logger.Error().Err(err).Str("addr", s.HealthServer.Addr).Msg("health server failed")
		}
	}()
}

// ListenAndServe listens on TCP address s.Addr to handle Dialogflow
// fulfillment requests, s.HealthServer.Addr to handle health checks.
//
// If s.Addr is blank, "0.0.0.0:80" is used.
// If s.HealthServer.Addr is blank, "0.0.0.0:8080" is used.
//
// ListenAndServe always returns a non-nil error.
func (s *Server) ListenAndServe() error {
	if err := s.enableBasicAuth(); err != nil {
		return err
	}

	if s.Server.Addr == "" {
		s.Server.Addr = "0.0.0.0:80"
	}
	if s.HealthServer.Addr == "" {
		s.HealthServer.Addr = "0.0.0.0:8080"
	}

	s.serveHealth()
	s.SetStatus(http.StatusOK)

	s.logger.Info().
		Str("addr", s.Server.Addr).
		Str("health_addr", s.HealthServer.Addr).
		Bool("basic_auth", !s.DisableBasicAuth).
		Msg("fulfillment server listening")

	return s.Server.ListenAndServe()
}

// ListenAndServeTLS listens on TCP address s.Addr to handle Dialogflow
// fulfillment requests, and s.HealthServer.Addr to handle health checks.
//
// If s.Addr is blank, "0.0.0.0:443" is used.
// If s.HealthServer.Addr is blank, "0.0.0.0:8080" is used.
// If s.ACMEHTTPChallengeServer.Addr is blank, "0.0.0.0:80" is used.
//
// If s.Domain is not blank, Let's Encrypt is enabled automatically for the
// domain and certFile and keyFile may be blank. Use of this function implies
// acceptance of the LetsEncrypt Terms of Service.
//
// Let's Encrypt certificates are cached using s.AutocertCache. If
// s.AutocertCache is nil, an autocert.DirCache is created based on
// s.CacheDirectory, or DefaultCacheDirectory when that is blank.
//
// ListenAndServeTLS always returns a non-nil error.
func (s *Server) ListenAndServeTLS(certFile, keyFile string) error {
	if err := s.enableBasicAuth(); err != nil {
		return err
	}

	if s.Server.Addr == "" {
		s.Server.Addr = "0.0.0.0:443"
	}
	if s.HealthServer.Addr == "" {
		s.HealthServer.Addr = "0.0.0.0:8080"
	}
	if s.ACMEHTTPChallengeServer.Addr == "" {
		s.ACMEHTTPChallengeServer.Addr = "0.0.0.0:80"
	}

	if s.Domain != "" {
		s.autocertManager = &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(s.Domain),
			Cache:      s.AutocertCache,
		}

		if s.autocertManager.Cache == nil {
			dir := s.CacheDirectory
			if dir == "" {
				dir = DefaultCacheDirectory
			}
			s.autocertManager.Cache = autocert.DirCache(dir)
		}

		s.ACMEHTTPChallengeServer.Handler = s.autocertManager.HTTPHandler(nil)

		s.Server.TLSConfig = &tls.Config{
			GetCertificate: s.autocertManager.GetCertificate,
		}

		// Start the ACME HTTP challenge server.
		go func() {
			if err := s.ACMEHTTPChallengeServer.ListenAndServe(); err != nil {
				if errors.Is(err, http.ErrServerClosed) {
					return
				}

				s.SetStatus(http.StatusServiceUnavailable)
				s.logger.Error().Err(err).Str("addr", s.ACMEHTTPChallengeServer.Addr).Msg("acme challenge server failed")
			}
		}()
	}

	s.serveHealth()
	s.SetStatus(http.StatusOK)

	s.logger.Info().
		Str("addr", s.Server.Addr).
		Str("health_addr", s.HealthServer.Addr).
		Str("domain", s.Domain).
		Bool("basic_auth", !s.DisableBasicAuth).
		Msg("fulfillment server listening with TLS")

	return s.Server.ListenAndServeTLS(certFile, keyFile)
}

// ListenAndServeUntilSignal invokes ListenAndServe and blocks until one of
// the given OS signals is received. SIGINT and SIGTERM are used when sig is
// empty. It returns the error that stopped the server early, if any.
func (s *Server) ListenAndServeUntilSignal(sig ...os.Signal) error {
	return s.untilSignal(s.ListenAndServe, sig)
}

// ListenAndServeTLSUntilSignal invokes ListenAndServeTLS and blocks until
// one of the given OS signals is received.
func (s *Server) ListenAndServeTLSUntilSignal(certFile, keyFile string, sig ...os.Signal) error {
	return s.untilSignal(func() error {
		return s.ListenAndServeTLS(certFile, keyFile)
	}, sig)
}

func (s *Server) untilSignal(serve func() error, sig []os.Signal) error {
	errc := make(chan error, 1)
	go func() {
		errc <- serve()
	}()

	if len(sig) == 0 {
		sig = append(sig, syscall.SIGINT, syscall.SIGTERM)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, sig...)
	defer signal.Stop(signalChan)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-signalChan:
	}

	s.logger.Info().Msg("shutdown signal received, exiting")
	return s.Shutdown(context.Background())
}

// Status returns the status of the fulfillment server.
func (s *Server) Status() int {
	return int(s.status.Load())
}

// SetStatus sets the status of the fulfillment server.
func (s *Server) SetStatus(status int) {
	s.status.Store(int32(status))
}

// Shutdown gracefully shuts down the fulfillment server.
//
// Shutdown works by calling Shutdown on the fulfillment, health, and acme HTTP
// challenge servers managed by the Server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetStatus(http.StatusServiceUnavailable)

	var errs []error
	if err := s.HealthServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.Server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.ACMEHTTPChallengeServer != nil {
		if err := s.ACMEHTTPChallengeServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
