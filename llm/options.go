/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"errors"
	"net/http"

	"github.com/openai/openai-go/option"
)

// Option is a functional option for configuring the Client.
type Option func(*options) error

type options struct {
	requestOpts []option.RequestOption
}

// WithBaseURL overrides the backend endpoint. Tests use this to point
// the client at a local server.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.New("base URL cannot be empty")
		}
		o.requestOpts = append(o.requestOpts, option.WithBaseURL(url))
		return nil
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		o.requestOpts = append(o.requestOpts, option.WithHTTPClient(hc))
		return nil
	}
}
