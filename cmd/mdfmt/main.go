/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main reformats the fenced Go samples in a tree of markdown
// files. The root comes from the first argument, or MDFMT_ROOT, or the
// working directory.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/stewardhq/steward/mdformat"
)

type config struct {
	Root string `env:"MDFMT_ROOT,default=."`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}
	root := cfg.Root
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	rewrote, err := mdformat.Process(ctx, root)
	if err != nil {
		clog.FatalContextf(ctx, "formatting markdown: %v", err)
	}
	clog.InfoContextf(ctx, "Rewrote %d files", rewrote)
}
