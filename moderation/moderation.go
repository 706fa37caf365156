/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package moderation

import (
	"context"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/stewardhq/steward/githubapi"
	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/labeler"
)

// Physical attributes of the Alert label, created on first use.
const (
	alertColor            = "FF0000"
	alertLabelDescription = "Potential spam, abuse, or off-topic."
)

// redactedTitle replaces the title of flagged content.
const redactedTitle = "Content Under Review"

// redactedBody replaces the body of flagged content.
const redactedBody = `This post has been flagged for review by [Steward](https://github.com/stewardhq/steward) due to possible spam, abuse, or off-topic content. Please review the Code of Conduct and Security Policy in this repository's community health files.

For questions or bug reports about this automation please visit https://github.com/stewardhq/steward.

Thank you 🙏
`

// Config holds the moderation switches.
type Config struct {
	// BlockUser additionally blocks flagged non-member authors from
	// the organization.
	BlockUser bool `env:"BLOCK_USER,default=false"`
}

// Client is the slice of the GitHub API the orchestrator needs beyond
// the item's surface.
type Client interface {
	// EnsureLabel creates a repository label if it does not exist yet.
	EnsureLabel(ctx context.Context, name, color, description string) error

	// IsOrgMember reports whether user is a member of the owning
	// organization. Lookup failures read as non-membership.
	IsOrgMember(ctx context.Context, user string) bool
}

var _ Client = (*githubapi.Client)(nil)

// Decision records why the orchestrator acted as it did. It is
// derived per run and never persisted.
type Decision struct {
	Labels         []string
	IsAlert        bool
	AuthorIsMember bool
}

// Orchestrator drives remediation for one item at a time.
type Orchestrator struct {
	gh        Client
	blockUser bool
}

// New returns an Orchestrator using the given client and switches.
func New(gh Client, cfg Config) *Orchestrator {
	return &Orchestrator{gh: gh, blockUser: cfg.BlockUser}
}

// Moderate applies the classified labels and, when the item is flagged
// with Alert by a non-member author, redacts, closes (pull requests
// excepted), locks, and optionally blocks. An empty classification is
// a no-op.
func (o *Orchestrator) Moderate(ctx context.Context, surface item.Surface, labels []string) Decision {
	log := clog.FromContext(ctx)
	decision := Decision{Labels: labels}
	if len(labels) == 0 {
		log.Info("No relevant labels found, nothing to apply")
		return decision
	}

	it := surface.Item()
	decision.IsAlert = labeler.IsAlert(labels)

	if decision.IsAlert {
		// The label must exist physically before it can be applied.
		if err := o.gh.EnsureLabel(ctx, labeler.AlertLabel, alertColor, alertLabelDescription); err != nil {
			log.With("error", err).Warn("Failed to ensure Alert label exists")
		}
	}
	if err := surface.ApplyLabels(ctx, labels); err != nil {
		log.With("error", err).Warn("Failed to apply labels")
	} else {
		log.With("labels", strings.Join(labels, ", ")).Info("Applied labels")
	}
	if !decision.IsAlert {
		return decision
	}

	decision.AuthorIsMember = o.gh.IsOrgMember(ctx, it.Author)
	if decision.AuthorIsMember {
		log.With("author", it.Author).Info("Author is an organization member, skipping remediation")
		return decision
	}

	log.With("author", it.Author, "kind", it.Kind).Warn("Moderating flagged item")
	if err := surface.Edit(ctx, redactedTitle, redactedBody); err != nil {
		log.With("error", err).Warn("Failed to redact content")
	}
	if it.Kind == item.KindPullRequest {
		log.Info("Leaving pull request open for maintainer review")
	} else if err := surface.Close(ctx); err != nil {
		log.With("error", err).Warn("Failed to close item")
	}
	if err := surface.Lock(ctx); err != nil {
		log.With("error", err).Warn("Failed to lock item")
	}
	if o.blockUser {
		if err := surface.BlockAuthor(ctx); err != nil {
			log.With("error", err, "author", it.Author).Warn("Failed to block author")
		}
	}
	return decision
}
