// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts webhook requests by action and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ssml_fulfillment_requests_total",
		Help: "Webhook requests handled, by action and outcome.",
	}, []string{"action", "status"})

	// FallbacksTotal counts Choose Example requests that fell back, by reason.
	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ssml_example_fallbacks_total",
		Help: "Choose Example requests answered with the fallback response.",
	}, []string{"reason"})

	// ExamplesServedTotal counts SSML examples played, by example name.
	ExamplesServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ssml_examples_served_total",
		Help: "SSML examples returned to users, by example name.",
	}, []string{"example"})
)
