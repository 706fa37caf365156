/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main generates the PR summary block for the pull request in
// the triggering event and folds it into the description. Merged pull
// requests additionally get the fixed-issue notifications and the
// contributor thank-you.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/stewardhq/steward/githubapi"
	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/prsummary"
)

type config struct {
	GitHub  githubapi.Config
	LLM     llm.Config
	Event   item.Config
	Summary prsummary.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	gh, err := githubapi.New(ctx, cfg.GitHub)
	if err != nil {
		clog.FatalContextf(ctx, "creating GitHub client: %v", err)
	}
	completer, err := llm.New(cfg.LLM)
	if err != nil {
		clog.FatalContextf(ctx, "creating completion client: %v", err)
	}

	it, err := item.Load(ctx, gh, cfg.Event)
	if err != nil {
		clog.FatalContextf(ctx, "loading event: %v", err)
	}
	if it.Kind != item.KindPullRequest {
		clog.FatalContextf(ctx, "event %q is not a pull request event", cfg.Event.EventName)
	}

	surface := item.NewSurface(gh, it)
	if err := prsummary.New(gh, completer, cfg.Summary).Run(ctx, surface); err != nil {
		clog.FatalContextf(ctx, "summarizing #%d: %v", it.Number, err)
	}
	clog.InfoContextf(ctx, "Updated summary for #%d", it.Number)
}
