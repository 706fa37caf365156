/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/stewardhq/steward/llm/metrics"
)

// meterName is the OpenTelemetry meter for completion token counters.
const meterName = "steward.llm"

// Config holds the environment-sourced completion settings. The Azure
// fields select the enterprise gateway backend when both the key and
// endpoint are present.
type Config struct {
	Model           string `env:"OPENAI_MODEL,default=gpt-4o"`
	APIKey          string `env:"OPENAI_API_KEY"`
	AzureAPIKey     string `env:"OPENAI_AZURE_API_KEY"`
	AzureEndpoint   string `env:"OPENAI_AZURE_ENDPOINT"`
	AzureAPIVersion string `env:"OPENAI_AZURE_API_VERSION,default=2024-05-01-preview"`
}

// UsesGateway reports whether the gateway backend will be selected.
func (c Config) UsesGateway() bool {
	return c.AzureAPIKey != "" && c.AzureEndpoint != ""
}

// Validate checks that the configuration can construct a client.
func (c Config) Validate() error {
	if c.Model == "" {
		return errors.New("model is required")
	}
	if !c.UsesGateway() && c.APIKey == "" {
		return errors.New("an OpenAI API key is required when no gateway is configured")
	}
	return nil
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role
	Content string
}

// System returns a system-role message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user-role message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Completer is the completion surface consumed by the classification,
// welcome, and summary generators. *Client implements it.
type Completer interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}

// Client sends conversations to the configured backend.
type Client struct {
	api   openai.Client
	model string
	genai *metrics.GenAI
}

// New constructs a Client for the backend selected by cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var reqOpts []option.RequestOption
	if cfg.UsesGateway() {
		reqOpts = append(reqOpts,
			azure.WithEndpoint(cfg.AzureEndpoint, cfg.AzureAPIVersion),
			azure.WithAPIKey(cfg.AzureAPIKey),
		)
	} else {
		reqOpts = append(reqOpts, option.WithAPIKey(cfg.APIKey))
	}

	var settings options
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}
	reqOpts = append(reqOpts, settings.requestOpts...)

	return &Client{
		api:   openai.NewClient(reqOpts...),
		model: cfg.Model,
		genai: metrics.NewGenAI(meterName),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the conversation and returns the first choice's
// content, trimmed. Failures are not retried here: callers decide
// whether a classification or generation step is worth repeating.
func (c *Client) Complete(ctx context.Context, msgs []Message) (string, error) {
	parts := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			parts = append(parts, openai.SystemMessage(m.Content))
		case RoleUser:
			parts = append(parts, openai.UserMessage(m.Content))
		default:
			return "", fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: parts,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	c.genai.RecordTokens(ctx, c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	clog.FromContext(ctx).With("model", c.model).
		With("prompt_tokens", resp.Usage.PromptTokens).
		With("completion_tokens", resp.Usage.CompletionTokens).
		Debug("Completion finished")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
