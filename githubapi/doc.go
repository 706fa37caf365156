/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package githubapi constructs authenticated GitHub clients for steward.

A Client bundles the REST and GraphQL clients over one authenticated
HTTP transport, scoped to the repository named in the configuration.
Authentication is either a token or GitHub App installation
credentials. Base URLs are overridable for GitHub Enterprise and for
tests.

Repo-level helpers that steward needs beyond the raw clients live here:
the repository label inventory, raw pull request diffs, organization
membership checks, and organization blocks.
*/
package githubapi
