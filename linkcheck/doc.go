/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package linkcheck finds URLs in markdown or plain text and probes
// them for liveness. Allow-listed hosts pass without a request: local
// and placeholder addresses, plus domains that reject automated
// traffic. Everything else must parse with a scheme and host and
// answer a HEAD request below 400.
//
// Probing fans out across a bounded worker pool. The check is
// side-effect free and the result set is sorted, so repeated runs over
// the same text are deterministic.
package linkcheck
