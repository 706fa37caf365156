/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package llm sends chat conversations to a hosted language model and
returns the completion text.

Two backends are supported: the OpenAI API directly, and an Azure-style
enterprise gateway. The gateway is selected when both a gateway key and
endpoint are configured; otherwise the client talks to OpenAI and a
plain API key is required. Both return the same shape: the first
choice's message content, trimmed.

Token usage for every call is recorded on the "steward.llm" meter.
*/
package llm
