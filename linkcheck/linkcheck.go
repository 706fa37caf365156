/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"github.com/stewardhq/steward/retrywait"
)

// urlPattern matches markdown link targets and bare URLs in running
// text.
var urlPattern = regexp.MustCompile(
	`\[([^\]]+)\]\(([^)]+)\)` + // markdown links [text](url)
		`|((?:https?://)?(?:www\.)?[\w.-]+\.[a-zA-Z]{2,}(?:/[^\s"')\]]*)?)`, // plaintext URLs
)

// allowList holds substrings that exempt a URL from probing:
// local/dev addresses, placeholder text, and domains that reject or
// rate-limit automated requests.
var allowList = []string{
	"localhost",
	"127.0.0",
	":5000",
	":3000",
	":8000",
	":8080",
	":6006",
	"MODEL_ID",
	"API_KEY",
	"url",
	"example",
	"mailto:",
	"github.com", // may be a private repo
	"kaggle.com",
	"reddit.com",
	"linkedin.com",
	"twitter.com",
	"x.com",
	"storage.googleapis.com", // may be a private bucket
}

// cleanURL strips the wrapping quotes and trailing punctuation that
// text extraction drags along. Three passes unwrap nestings like
// `"'url'".`.
func cleanURL(u string) string {
	for range 3 {
		u = strings.Trim(u, `"'`)
		u = strings.TrimRight(u, ".,:;!?`\\")
		u = strings.ReplaceAll(u, ".git@main", "")
		u = strings.ReplaceAll(u, "git+", "")
	}
	return u
}

// Extract returns the unique checkable URLs found in text, cleaned and
// sorted. Matches without a scheme are dropped; bare domains in prose
// are not worth probing.
func Extract(text string) []string {
	seen := map[string]bool{}
	var urls []string
	for _, m := range urlPattern.FindAllStringSubmatch(text, -1) {
		raw := m[2]
		if raw == "" {
			raw = m[3]
		}
		if raw == "" {
			continue
		}
		cleaned := cleanURL(raw)
		parsed, err := url.Parse(cleaned)
		if err != nil || parsed.Scheme == "" {
			continue
		}
		if !seen[cleaned] {
			seen[cleaned] = true
			urls = append(urls, cleaned)
		}
	}
	slices.Sort(urls)
	return urls
}

// Config tunes the probe loop.
type Config struct {
	// Timeout bounds each individual HEAD request.
	Timeout time.Duration `env:"LINKCHECK_TIMEOUT,default=2s"`

	// MaxAttempts is how many times a URL is probed before it is
	// declared unreachable. Only transport errors consume extra
	// attempts; a completed response settles the verdict immediately.
	MaxAttempts int `env:"LINKCHECK_MAX_ATTEMPTS,default=3"`

	// RetryBackoff is the base of the exponential backoff between
	// probe attempts.
	RetryBackoff time.Duration `env:"LINKCHECK_RETRY_BACKOFF,default=1s"`

	// Workers bounds how many URLs are probed concurrently.
	Workers int `env:"LINKCHECK_WORKERS,default=16"`
}

// Checker probes URLs over HTTP.
type Checker struct {
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
	workers     int
}

// Option customizes a Checker.
type Option func(*Checker)

// WithHTTPClient substitutes the probing client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) { c.client = hc }
}

// New returns a Checker. Zero config values fall back to the probe
// defaults: 2s timeout, 3 attempts, 1s backoff, 16 workers.
func New(cfg Config, opts ...Option) *Checker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.Workers < 1 {
		cfg.Workers = 16
	}
	c := &Checker{
		client:      &http.Client{Timeout: cfg.Timeout},
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.RetryBackoff,
		workers:     cfg.Workers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check scans text for URLs and probes each one, reporting whether all
// passed and which did not.
func (c *Checker) Check(ctx context.Context, text string) (passing bool, bad []string) {
	bad = c.checkURLs(ctx, Extract(text))
	return len(bad) == 0, bad
}

// FileResult is the outcome of scanning one file.
type FileResult struct {
	Path    string
	Checked int
	Bad     []string
}

// CheckFile reads path and scans its contents.
func (c *Checker) CheckFile(ctx context.Context, path string) (FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path}, fmt.Errorf("read %s: %w", path, err)
	}
	urls := Extract(string(data))
	return FileResult{
		Path:    path,
		Checked: len(urls),
		Bad:     c.checkURLs(ctx, urls),
	}, nil
}

// checkURLs probes urls through the worker pool and returns the
// unreachable ones, sorted.
func (c *Checker) checkURLs(ctx context.Context, urls []string) []string {
	var mu sync.Mutex
	var bad []string

	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for _, u := range urls {
		g.Go(func() error {
			if !c.probe(ctx, u) {
				mu.Lock()
				bad = append(bad, u)
				mu.Unlock()
			}
			return nil
		})
	}
	// We ignore the error since the probes always return nil.
	_ = g.Wait()

	slices.Sort(bad)
	if len(bad) > 0 {
		clog.FromContext(ctx).With("urls", bad).Warnf("Found %d unreachable URLs", len(bad))
	}
	return bad
}

// probe reports whether a single URL passes. Allow-listed URLs pass
// without a request; the rest must parse with a scheme and host and
// answer a HEAD below 400 within the attempt budget.
func (c *Checker) probe(ctx context.Context, u string) bool {
	for _, allowed := range allowList {
		if strings.Contains(u, allowed) {
			return true
		}
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false
	}

	status, err := retrywait.Do(ctx, retrywait.Config{
		MaxRetries:  c.maxAttempts - 1,
		BaseBackoff: c.backoff,
		MaxBackoff:  time.Minute,
	}, "probe "+u, nil, func() (int, error) {
		return c.head(ctx, u)
	})
	return err == nil && status < 400
}

// head performs one HEAD request and returns the final status after
// redirects. Some hosts reject requests that do not look like a
// browser, hence the headers.
func (c *Checker) head(ctx context.Context, u string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0")
	req.Header.Set("Accept", "*")
	req.Header.Set("Accept-Language", "*")
	req.Header.Set("Accept-Encoding", "*")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
