/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main probes every URL found in the files given as arguments
// and prints a markdown report. The exit status is non-zero when any
// URL is unreachable, so CI can gate on it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/stewardhq/steward/linkcheck"
)

type config struct {
	Check linkcheck.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}
	files := os.Args[1:]
	if len(files) == 0 {
		clog.FatalContextf(ctx, "usage: linkcheck <file>...")
	}

	checker := linkcheck.New(cfg.Check)
	results := make([]linkcheck.FileResult, 0, len(files))
	var unreachable int
	for _, path := range files {
		res, err := checker.CheckFile(ctx, path)
		if err != nil {
			clog.FatalContextf(ctx, "checking %s: %v", path, err)
		}
		unreachable += len(res.Bad)
		results = append(results, res)
	}

	fmt.Print(linkcheck.Report(results))
	if unreachable > 0 {
		os.Exit(1)
	}
}
