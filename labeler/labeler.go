/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labeler

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/prompt"
)

// AlertLabel marks an item as potential spam or abuse and triggers the
// moderation flow.
const AlertLabel = "Alert"

// alertDescription is used when the repository has no Alert label of
// its own.
const alertDescription = "Potential spam, abuse, or illegal activity including advertising, unsolicited promotions, malware, phishing, crypto offers, pirated software or media, free movie downloads, cracks, keygens or any other content that violates terms of service or legal standards."

// maxBodyChars bounds how much of the item body reaches the
// classification prompt.
const maxBodyChars = 16000

// maxLabels caps how many labels a single classification may yield.
const maxLabels = 3

var classifyTemplate = prompt.MustNew(`Select the top 1-3 most relevant labels for the following GitHub {{kind}}.

INSTRUCTIONS:
1. Review the {{kind}} title and description.
2. Consider the available labels and their descriptions.
3. Choose 1-3 labels that best match the {{kind}} content.
4. Only use the "Alert" label when you have high confidence that this is an inappropriate {{kind}}.
5. Respond ONLY with the chosen label names (no descriptions), separated by commas.
6. If no labels are relevant, respond with 'None'.

AVAILABLE LABELS:
{{labels}}

{{kind_upper}} TITLE:
{{title}}

{{kind_upper}} DESCRIPTION:
{{body}}

YOUR RESPONSE (label names only):
`)

// Classifier selects labels for items.
type Classifier struct {
	completer llm.Completer
}

// New returns a Classifier backed by the given completer.
func New(completer llm.Completer) *Classifier {
	return &Classifier{completer: completer}
}

// Classify returns up to three labels for the item, each in the
// repository's canonical casing. An empty result means the model found
// nothing relevant. Completion failures propagate unretried.
func (c *Classifier) Classify(ctx context.Context, it *item.Item, available LabelSet, current []string) ([]string, error) {
	candidates := Candidates(available, current)

	text, err := classifyTemplate.
		MustBind("kind", string(it.Kind)).
		MustBind("kind_upper", strings.ToUpper(string(it.Kind))).
		MustBind("labels", candidates.Lines()).
		MustBind("title", it.Title).
		MustBind("body", prompt.Truncate(it.Body, maxBodyChars)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build classification prompt: %w", err)
	}

	reply, err := c.completer.Complete(ctx, []llm.Message{
		llm.System("You are a helpful assistant that labels GitHub issues, pull requests, and discussions."),
		llm.User(text),
	})
	if err != nil {
		return nil, fmt.Errorf("label completion: %w", err)
	}
	return Parse(reply, candidates), nil
}

// Candidates derives the label set offered to the model. Human-only
// labels are withheld, "bug" and "question" are mutually exclusive
// against the labels already on the item, and an Alert label is
// synthesized when the repository has none.
func Candidates(available LabelSet, current []string) LabelSet {
	candidates := available.Clone()

	// Only ever applied by humans.
	candidates.Delete("help wanted")
	candidates.Delete("TODO")

	switch {
	case containsFold(current, "bug"):
		candidates.Delete("question")
	case containsFold(current, "question"):
		candidates.Delete("bug")
	}

	if !candidates.Has(AlertLabel) {
		candidates[AlertLabel] = alertDescription
	}
	return candidates
}

// Parse maps the model's comma-separated reply onto canonical label
// names, dropping anything that matches no candidate. A reply
// containing "none" anywhere short-circuits to no labels.
func Parse(reply string, candidates LabelSet) []string {
	if strings.Contains(strings.ToLower(reply), "none") {
		return nil
	}

	var labels []string
	for _, field := range strings.Split(reply, ",") {
		if canonical, ok := candidates.Canonical(field); ok {
			labels = append(labels, canonical)
		}
	}
	if len(labels) > maxLabels {
		labels = labels[:maxLabels]
	}
	return labels
}

// IsAlert reports whether the classification flagged the item.
func IsAlert(labels []string) bool {
	return containsFold(labels, AlertLabel)
}

func containsFold(names []string, target string) bool {
	return slices.ContainsFunc(names, func(name string) bool {
		return strings.EqualFold(name, target)
	})
}
