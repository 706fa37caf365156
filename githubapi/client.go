/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client bundles authenticated REST and GraphQL clients scoped to one
// repository.
type Client struct {
	rest  *github.Client
	gql   *githubv4.Client
	owner string
	repo  string
}

// New constructs a Client from the configuration. The REST and GraphQL
// clients share one authenticated transport.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	owner, repo, err := cfg.Split()
	if err != nil {
		return nil, err
	}

	var hc *http.Client
	if cfg.UsesApp() {
		tr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.AppInstallationID, cfg.AppPrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("building app transport: %w", err)
		}
		if cfg.APIURL != defaultAPIURL {
			tr.BaseURL = strings.TrimSuffix(cfg.APIURL, "/")
		}
		hc = &http.Client{Transport: tr}
	} else {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	}

	rest := github.NewClient(hc)
	if cfg.APIURL != defaultAPIURL {
		base, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API URL: %w", err)
		}
		rest.BaseURL = base
	}

	var gql *githubv4.Client
	if cfg.GraphQLURL != "" {
		gql = githubv4.NewEnterpriseClient(cfg.GraphQLURL, hc)
	} else {
		gql = githubv4.NewClient(hc)
	}

	return &Client{
		rest:  rest,
		gql:   gql,
		owner: owner,
		repo:  repo,
	}, nil
}

// Owner returns the repository owner (user or organization).
func (c *Client) Owner() string { return c.owner }

// Repo returns the repository name.
func (c *Client) Repo() string { return c.repo }

// Rest returns the underlying REST client.
func (c *Client) Rest() *github.Client { return c.rest }

// GraphQL returns the underlying GraphQL client.
func (c *Client) GraphQL() *githubv4.Client { return c.gql }

// Username returns the login of the authenticated identity.
func (c *Client) Username(ctx context.Context) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("fetching authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// Labels fetches the repository's labels as a name to description map,
// preserving each name's canonical casing. The listing is paginated so
// repositories with large label inventories are read completely.
func (c *Client) Labels(ctx context.Context) (map[string]string, error) {
	labels := make(map[string]string)
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.rest.Issues.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels: %w", err)
		}
		for _, l := range page {
			labels[l.GetName()] = l.GetDescription()
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return labels, nil
}

// EnsureLabel creates a repository label, treating "already exists" as
// success.
func (c *Client) EnsureLabel(ctx context.Context, name, color, description string) error {
	_, resp, err := c.rest.Issues.CreateLabel(ctx, c.owner, c.repo, &github.Label{
		Name:        github.Ptr(name),
		Color:       github.Ptr(color),
		Description: github.Ptr(description),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return nil
		}
		return fmt.Errorf("creating label %q: %w", name, err)
	}
	return nil
}

// RawPRDiff fetches the unified diff of a pull request.
func (c *Client) RawPRDiff(ctx context.Context, number int) (string, error) {
	diff, _, err := c.rest.PullRequests.GetRaw(ctx, c.owner, c.repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("fetching diff for #%d: %w", number, err)
	}
	return diff, nil
}

// IsOrgMember reports whether user is a member of the repository's
// owning organization. Only a 204 from the membership endpoint counts
// as membership; every other status, including errors, is treated as
// non-membership.
func (c *Client) IsOrgMember(ctx context.Context, user string) bool {
	member, resp, err := c.rest.Organizations.IsMember(ctx, c.owner, user)
	if err != nil {
		clog.FromContext(ctx).With("org", c.owner).With("user", user).
			Warnf("Membership check failed, treating as non-member: %v", err)
		return false
	}
	return member && resp != nil && resp.StatusCode == http.StatusNoContent
}

// BlockUser blocks user from the repository's owning organization.
func (c *Client) BlockUser(ctx context.Context, user string) error {
	resp, err := c.rest.Organizations.BlockUser(ctx, c.owner, user)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return fmt.Errorf("blocking %q (status %d): %w", user, status, err)
	}
	return nil
}
