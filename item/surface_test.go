/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package item_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stewardhq/steward/item"
)

func TestRestSurface_LabelRoundTrip(t *testing.T) {
	var stored []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo-org/widgets/issues/7/labels", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var labels []string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&labels))
			stored = append(stored, labels...)
		}
		out := make([]map[string]string, 0, len(stored))
		for _, name := range stored {
			out = append(out, map[string]string{"name": name})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	})
	client := newTestClient(t, mux)

	surface := item.NewSurface(client, &item.Item{Number: 7, Kind: item.KindIssue})
	ctx := context.Background()
	if err := surface.ApplyLabels(ctx, []string{"bug", "Question"}); err != nil {
		t.Fatalf("ApplyLabels() = %v", err)
	}

	got, err := surface.CurrentLabels(ctx)
	if err != nil {
		t.Fatalf("CurrentLabels() = %v", err)
	}
	if diff := cmp.Diff([]string{"bug", "Question"}, got); diff != "" {
		t.Errorf("applied labels did not round-trip (-want +got):\n%s", diff)
	}
}

func TestRestSurface_ModerationSequence(t *testing.T) {
	var calls []string
	var patches []map[string]string
	record := func(r *http.Request) { calls = append(calls, r.Method+" "+r.URL.Path) }

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo-org/widgets/issues/7", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		patches = append(patches, body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 7}`)
	})
	mux.HandleFunc("/repos/octo-org/widgets/issues/7/lock", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if got, want := body["lock_reason"], "off-topic"; got != want {
			t.Errorf("lock_reason = %q, want %q", got, want)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/repos/octo-org/widgets/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if got, want := body["body"], "Automated response."; got != want {
			t.Errorf("comment body = %q, want %q", got, want)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	})
	mux.HandleFunc("/repos/octo-org/widgets/issues/7/labels/TODO", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/orgs/octo-org/blocks/mallory", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)

	ctx := context.Background()
	surface := item.NewSurface(client, &item.Item{Number: 7, Author: "mallory", Kind: item.KindPullRequest})

	require.NoError(t, surface.Edit(ctx, "Content Under Review", "Redacted."))
	require.NoError(t, surface.Close(ctx))
	require.NoError(t, surface.Lock(ctx))
	require.NoError(t, surface.Comment(ctx, "Automated response."))
	require.NoError(t, surface.RemoveLabel(ctx, "TODO"))
	require.NoError(t, surface.BlockAuthor(ctx))

	wantCalls := []string{
		"PATCH /repos/octo-org/widgets/issues/7",
		"PATCH /repos/octo-org/widgets/issues/7",
		"PUT /repos/octo-org/widgets/issues/7/lock",
		"POST /repos/octo-org/widgets/issues/7/comments",
		"DELETE /repos/octo-org/widgets/issues/7/labels/TODO",
		"PUT /orgs/octo-org/blocks/mallory",
	}
	if diff := cmp.Diff(wantCalls, calls); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}

	wantPatches := []map[string]string{
		{"title": "Content Under Review", "body": "Redacted."},
		{"state": "closed"},
	}
	if diff := cmp.Diff(wantPatches, patches); diff != "" {
		t.Errorf("edit payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestRestSurface_ErrorPropagation(t *testing.T) {
	// An empty mux 404s every call.
	client := newTestClient(t, http.NewServeMux())
	surface := item.NewSurface(client, &item.Item{Number: 7, Author: "mallory", Kind: item.KindIssue})
	ctx := context.Background()

	ops := []struct {
		name string
		op   func(context.Context) error
	}{{
		name: "apply labels",
		op:   func(ctx context.Context) error { return surface.ApplyLabels(ctx, []string{"bug"}) },
	}, {
		name: "comment",
		op:   func(ctx context.Context) error { return surface.Comment(ctx, "hi") },
	}, {
		name: "edit",
		op:   func(ctx context.Context) error { return surface.Edit(ctx, "t", "b") },
	}, {
		name: "close",
		op:   surface.Close,
	}, {
		name: "lock",
		op:   surface.Lock,
	}, {
		name: "block author",
		op:   surface.BlockAuthor,
	}}
	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.op(ctx); err == nil {
				t.Error("op succeeded against a 404 backend, wanted error")
			}
		})
	}
}

// gqlCall is one recorded GraphQL request.
type gqlCall struct {
	Query     string
	Variables map[string]any
}

// input returns the mutation input object of the i-th recorded call.
func (c gqlCall) input(t *testing.T) map[string]any {
	t.Helper()
	in, ok := c.Variables["input"].(map[string]any)
	if !ok {
		t.Fatalf("call has no input object, variables = %v", c.Variables)
	}
	return in
}

// newGraphQLSurface wires a discussion surface to a scripted GraphQL
// backend and returns the recorded calls.
func newGraphQLSurface(t *testing.T, it *item.Item, respond func(call gqlCall) string) (item.Surface, *[]gqlCall) {
	t.Helper()
	calls := &[]gqlCall{}
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		var req gqlCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*calls = append(*calls, req)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, respond(req))
	})
	client := newTestClient(t, mux)
	return item.NewSurface(client, it), calls
}

func TestDiscussionSurface_ApplyLabels(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Kind: item.KindDiscussion}
	surface, calls := newGraphQLSurface(t, it, func(call gqlCall) string {
		switch {
		case strings.Contains(call.Query, "addLabelsToLabelable"):
			return `{"data": {"addLabelsToLabelable": {"labelable": {"id": "D_node123"}}}}`
		case call.Variables["cursor"] == nil:
			return `{"data": {"repository": {"labels": {
				"nodes": [{"id": "LA_bug", "name": "bug"}],
				"pageInfo": {"endCursor": "c1", "hasNextPage": true}}}}}`
		default:
			return `{"data": {"repository": {"labels": {
				"nodes": [{"id": "LA_alert", "name": "Alert"}],
				"pageInfo": {"endCursor": "", "hasNextPage": false}}}}}`
		}
	})

	err := surface.ApplyLabels(context.Background(), []string{"alert", "BUG", "mystery"})
	if err != nil {
		t.Fatalf("ApplyLabels() = %v", err)
	}
	if len(*calls) != 3 {
		t.Fatalf("got %d GraphQL calls, want 3 (two label pages, one mutation)", len(*calls))
	}
	if got := (*calls)[1].Variables["cursor"]; got != "c1" {
		t.Errorf("second label page cursor = %v, want c1", got)
	}

	// base64("Discussion:D_node123")
	want := map[string]any{
		"labelableId": "RGlzY3Vzc2lvbjpEX25vZGUxMjM=",
		"labelIds":    []any{"LA_alert", "LA_bug"},
	}
	if diff := cmp.Diff(want, (*calls)[2].input(t)); diff != "" {
		t.Errorf("addLabelsToLabelable input mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscussionSurface_ApplyLabelsNoMatches(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Kind: item.KindDiscussion}
	surface, calls := newGraphQLSurface(t, it, func(gqlCall) string {
		return `{"data": {"repository": {"labels": {
			"nodes": [{"id": "LA_bug", "name": "bug"}],
			"pageInfo": {"endCursor": "", "hasNextPage": false}}}}}`
	})

	if err := surface.ApplyLabels(context.Background(), []string{"mystery"}); err != nil {
		t.Fatalf("ApplyLabels() = %v", err)
	}
	if len(*calls) != 1 {
		t.Errorf("got %d GraphQL calls, want just the label query when nothing resolves", len(*calls))
	}
}

func TestDiscussionSurface_CurrentLabelsEmpty(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Kind: item.KindDiscussion}
	surface, calls := newGraphQLSurface(t, it, func(gqlCall) string {
		t.Error("CurrentLabels should not reach the network for discussions")
		return `{}`
	})

	got, err := surface.CurrentLabels(context.Background())
	if err != nil {
		t.Fatalf("CurrentLabels() = %v", err)
	}
	if len(got) != 0 || len(*calls) != 0 {
		t.Errorf("CurrentLabels() = %v (%d calls), want empty set and no calls", got, len(*calls))
	}
}

func TestDiscussionSurface_Moderation(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Author: "mallory", Kind: item.KindDiscussion}
	surface, calls := newGraphQLSurface(t, it, func(call gqlCall) string {
		switch {
		case strings.Contains(call.Query, "updateDiscussion"):
			return `{"data": {"updateDiscussion": {"discussion": {"id": "D_node123"}}}}`
		case strings.Contains(call.Query, "closeDiscussion"):
			return `{"data": {"closeDiscussion": {"discussion": {"id": "D_node123"}}}}`
		case strings.Contains(call.Query, "lockLockable"):
			return `{"data": {"lockLockable": {"lockedRecord": {"locked": true}}}}`
		case strings.Contains(call.Query, "addDiscussionComment"):
			return `{"data": {"addDiscussionComment": {"comment": {"id": "DC_1"}}}}`
		default:
			t.Errorf("unexpected GraphQL query: %s", call.Query)
			return `{}`
		}
	})

	ctx := context.Background()
	require.NoError(t, surface.Edit(ctx, "Content Under Review", "Redacted."))
	require.NoError(t, surface.Close(ctx))
	require.NoError(t, surface.Lock(ctx))
	require.NoError(t, surface.Comment(ctx, "Automated response."))

	require.Len(t, *calls, 4)
	wantInputs := []map[string]any{
		{"discussionId": "D_node123", "title": "Content Under Review", "body": "Redacted."},
		{"discussionId": "D_node123"},
		{"lockableId": "D_node123", "lockReason": "OFF_TOPIC"},
		{"discussionId": "D_node123", "body": "Automated response."},
	}
	for i, want := range wantInputs {
		if diff := cmp.Diff(want, (*calls)[i].input(t)); diff != "" {
			t.Errorf("call %d input mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDiscussionSurface_RemoveLabel(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Kind: item.KindDiscussion}
	surface, calls := newGraphQLSurface(t, it, func(call gqlCall) string {
		if strings.Contains(call.Query, "removeLabelsFromLabelable") {
			return `{"data": {"removeLabelsFromLabelable": {"clientMutationId": null}}}`
		}
		return `{"data": {"repository": {"labels": {
			"nodes": [{"id": "LA_todo", "name": "TODO"}],
			"pageInfo": {"endCursor": "", "hasNextPage": false}}}}}`
	})

	if err := surface.RemoveLabel(context.Background(), "TODO"); err != nil {
		t.Fatalf("RemoveLabel() = %v", err)
	}
	require.Len(t, *calls, 2)
	want := map[string]any{
		"labelableId": "RGlzY3Vzc2lvbjpEX25vZGUxMjM=",
		"labelIds":    []any{"LA_todo"},
	}
	if diff := cmp.Diff(want, (*calls)[1].input(t)); diff != "" {
		t.Errorf("removeLabelsFromLabelable input mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscussionSurface_GraphQLErrors(t *testing.T) {
	it := &item.Item{Number: 9, NodeID: "D_node123", Kind: item.KindDiscussion}
	// HTTP 200 with an errors array must still read as failure.
	surface, _ := newGraphQLSurface(t, it, func(gqlCall) string {
		return `{"data": null, "errors": [{"message": "Could not resolve to a node"}]}`
	})

	ctx := context.Background()
	ops := []struct {
		name string
		op   func(context.Context) error
	}{{
		name: "edit",
		op:   func(ctx context.Context) error { return surface.Edit(ctx, "t", "b") },
	}, {
		name: "close",
		op:   surface.Close,
	}, {
		name: "lock",
		op:   surface.Lock,
	}, {
		name: "comment",
		op:   func(ctx context.Context) error { return surface.Comment(ctx, "hi") },
	}}
	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.op(ctx); err == nil {
				t.Error("op succeeded despite GraphQL errors array, wanted error")
			}
		})
	}
}
