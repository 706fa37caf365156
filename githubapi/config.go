/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi

import (
	"errors"
	"fmt"
	"strings"
)

// defaultAPIURL is github.com's REST endpoint; GitHub Actions exports it
// as GITHUB_API_URL on every runner.
const defaultAPIURL = "https://api.github.com"

// Config holds the environment-sourced GitHub connection settings.
// Either Token or the three App* fields must be set.
type Config struct {
	// Repository is the "owner/name" slug of the repository being
	// operated on.
	Repository string `env:"GITHUB_REPOSITORY,required"`

	Token string `env:"GITHUB_TOKEN"`

	// GitHub App installation credentials, used when Token is empty.
	AppID             int64  `env:"GITHUB_APP_ID"`
	AppInstallationID int64  `env:"GITHUB_APP_INSTALLATION_ID"`
	AppPrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`

	APIURL     string `env:"GITHUB_API_URL,default=https://api.github.com"`
	GraphQLURL string `env:"GITHUB_GRAPHQL_URL"`
}

// Validate checks that the configuration can construct a client.
func (c Config) Validate() error {
	if _, _, err := c.Split(); err != nil {
		return err
	}
	if c.Token != "" {
		return nil
	}
	if c.AppID != 0 && c.AppInstallationID != 0 && c.AppPrivateKeyPath != "" {
		return nil
	}
	return errors.New("either GITHUB_TOKEN or the GitHub App credential triple is required")
}

// UsesApp reports whether App installation credentials select the App
// transport. A token always wins when both are present.
func (c Config) UsesApp() bool {
	return c.Token == "" && c.AppID != 0
}

// Split returns the owner and name halves of the repository slug.
func (c Config) Split() (owner, name string, err error) {
	owner, name, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("repository %q is not an owner/name slug", c.Repository)
	}
	return owner, name, nil
}
