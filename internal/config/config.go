// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config loads the webhook configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the settings of the serve command.
type Config struct {
	HTTP struct {
		Addr string
	}
	Health struct {
		Addr string
	}
	Auth struct {
		Disabled       bool
		Username       string
		HashedPassword string
	}
	TLS struct {
		Domain   string
		CacheDir string
		CertFile string
		KeyFile  string
	}
	// DataDir optionally overrides the embedded responses.yaml and
	// examples.yaml.
	DataDir string
	Log     struct {
		Level  zerolog.Level
		Format string
	}
}

// TLSEnabled reports whether the server should listen with TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLS.Domain != "" || (c.TLS.CertFile != "" && c.TLS.KeyFile != "")
}

// New returns a viper instance reading the environment (SSML_ prefix) and
// an optional ssml-examples.yaml, with defaults applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SSML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("ssml-examples")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("http.addr", "0.0.0.0:8000")
	v.SetDefault("health.addr", "0.0.0.0:8080")
	v.SetDefault("auth.disabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	return v
}

// Load reads config from v. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Health.Addr = v.GetString("health.addr")
	cfg.Auth.Disabled = v.GetBool("auth.disabled")
	cfg.Auth.Username = v.GetString("auth.username")
	cfg.Auth.HashedPassword = v.GetString("auth.hashed_password")
	cfg.TLS.Domain = v.GetString("tls.domain")
	cfg.TLS.CacheDir = v.GetString("tls.cache_dir")
	cfg.TLS.CertFile = v.GetString("tls.cert_file")
	cfg.TLS.KeyFile = v.GetString("tls.key_file")
	cfg.DataDir = v.GetString("data.dir")
	cfg.Log.Format = v.GetString("log.format")

	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSML_LOG_LEVEL: %w", err)
	}
	cfg.Log.Level = level

	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return nil, fmt.Errorf("SSML_LOG_FORMAT must be json or console, got %q", cfg.Log.Format)
	}
	if !cfg.Auth.Disabled {
		if cfg.Auth.Username == "" {
			return nil, fmt.Errorf("SSML_AUTH_USERNAME is required unless SSML_AUTH_DISABLED is set")
		}
		if cfg.Auth.HashedPassword == "" {
			return nil, fmt.Errorf("SSML_AUTH_HASHED_PASSWORD is required unless SSML_AUTH_DISABLED is set")
		}
	}
	if (cfg.TLS.CertFile == "") != (cfg.TLS.KeyFile == "") && cfg.TLS.Domain == "" {
		return nil, fmt.Errorf("SSML_TLS_CERT_FILE and SSML_TLS_KEY_FILE must be set together")
	}

	return cfg, nil
}
