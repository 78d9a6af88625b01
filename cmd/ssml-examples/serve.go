// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"io"
	"os"

	"github.com/actions-on-google/dialogflow-ssml-go/catalog"
	"github.com/actions-on-google/dialogflow-ssml-go/fulfillment"
	"github.com/actions-on-google/dialogflow-ssml-go/internal/build"
	"github.com/actions-on-google/dialogflow-ssml-go/internal/config"
	"github.com/actions-on-google/dialogflow-ssml-go/responses"
	"github.com/actions-on-google/dialogflow-ssml-go/ssml"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fulfillment webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, cfg)

			handler, err := loadHandler(cfg.DataDir, logger)
			if err != nil {
				return err
			}

			fs := fulfillment.NewServer(logger)
			fs.Addr = cfg.HTTP.Addr
			fs.HealthServer.Addr = cfg.Health.Addr
			fs.DisableBasicAuth = cfg.Auth.Disabled
			fs.BasicAuthUsername = cfg.Auth.Username
			fs.BasicAuthHashedPassword = cfg.Auth.HashedPassword
			fs.Domain = cfg.TLS.Domain
			fs.CacheDirectory = cfg.TLS.CacheDir

			for name, fn := range ssml.Actions(handler) {
				fs.Actions.Set(name, fn)
			}

			logger.Info().
				Str("version", build.Version).
				Str("commit", build.Commit).
				Msg("starting ssml-examples")

			if cfg.TLSEnabled() {
				return fs.ListenAndServeTLSUntilSignal(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			}
			return fs.ListenAndServeUntilSignal()
		},
	}

	flags := cmd.Flags()
	flags.String("http", "", "HTTP listen address")
	flags.String("health", "", "health and metrics listen address")
	flags.String("username", "", "basic auth username")
	flags.String("hashed-password", "", "basic auth bcrypt hashed password")
	flags.Bool("disable-basic-auth", false, "serve fulfillment requests without basic auth")
	flags.String("domain", "", "domain to obtain Let's Encrypt certificates for")
	flags.String("data-dir", "", "directory overriding responses.yaml and examples.yaml")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("http.addr", flags.Lookup("http"))
	_ = v.BindPFlag("health.addr", flags.Lookup("health"))
	_ = v.BindPFlag("auth.username", flags.Lookup("username"))
	_ = v.BindPFlag("auth.hashed_password", flags.Lookup("hashed-password"))
	_ = v.BindPFlag("auth.disabled", flags.Lookup("disable-basic-auth"))
	_ = v.BindPFlag("tls.domain", flags.Lookup("domain"))
	_ = v.BindPFlag("data.dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	return cmd
}

// loadHandler loads the response templates and example catalog from
// dataDir, or the embedded defaults, and returns the intent handler.
func loadHandler(dataDir string, logger zerolog.Logger) (*ssml.Handler, error) {
	templates, err := responses.Load(dataDir)
	if err != nil {
		return nil, err
	}
	examples, err := catalog.Load(dataDir)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("examples", examples.Len()).
		Str("data_dir", dataDir).
		Msg("loaded response data")

	return ssml.NewHandler(templates, examples, ssml.ZerologWarner{Logger: logger}), nil
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.Log.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(cfg.Log.Level).With().Timestamp().Logger()
}
