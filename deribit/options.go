// Copyright (c) 2025 cdrappi

package deribit

import (
	"fmt"
	"net/url"
	"time"
)

var (
	// MainURL is the production REST endpoint.
	MainURL = "https://www.deribit.com"

	// TestURL is the public test environment endpoint.
	TestURL = "https://test.deribit.com"
)

type Options struct {
	// RestURL is the root URL for the REST service. Defaults to MainURL; use
	// TestURL to run against the test environment.
	RestURL string

	// Timeout to use for the HTTP requests. Zero keeps the transport
	// default.
	HttpClientTimeout time.Duration
}

func (v *Options) setDefaults() {
	if v.RestURL == "" {
		v.RestURL = MainURL
	}
}

// Check validates the options.
func (v *Options) Check() error {
	v.setDefaults()
	if _, err := url.Parse(v.RestURL); err != nil {
		return fmt.Errorf("invalid rest url %q: %w", v.RestURL, err)
	}
	return nil
}
