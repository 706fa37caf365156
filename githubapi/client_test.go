/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stewardhq/steward/githubapi"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     githubapi.Config
		wantErr bool
	}{{
		name: "token auth",
		cfg:  githubapi.Config{Repository: "octo-org/widgets", Token: "t"},
	}, {
		name: "app auth",
		cfg: githubapi.Config{
			Repository:        "octo-org/widgets",
			AppID:             123,
			AppInstallationID: 456,
			AppPrivateKeyPath: "/etc/steward/key.pem",
		},
	}, {
		name:    "no credentials",
		cfg:     githubapi.Config{Repository: "octo-org/widgets"},
		wantErr: true,
	}, {
		name:    "partial app credentials",
		cfg:     githubapi.Config{Repository: "octo-org/widgets", AppID: 123},
		wantErr: true,
	}, {
		name:    "malformed repository slug",
		cfg:     githubapi.Config{Repository: "widgets", Token: "t"},
		wantErr: true,
	}, {
		name:    "empty owner",
		cfg:     githubapi.Config{Repository: "/widgets", Token: "t"},
		wantErr: true,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// newTestClient points a token-authenticated Client at a fake GitHub.
func newTestClient(t *testing.T, handler http.Handler) *githubapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := githubapi.New(context.Background(), githubapi.Config{
		Repository: "octo-org/widgets",
		Token:      "test-token",
		APIURL:     srv.URL,
		GraphQLURL: srv.URL + "/graphql",
	})
	require.NoError(t, err)
	return client
}

func TestLabels_Paginated(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo-org/widgets/labels", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name": "TODO", "description": ""}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octo-org/widgets/labels?page=2>; rel="next"`, srvURL))
		fmt.Fprint(w, `[
			{"name": "bug", "description": "Something is broken"},
			{"name": "Question", "description": "Further information requested"}
		]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	client, err := githubapi.New(context.Background(), githubapi.Config{
		Repository: "octo-org/widgets",
		Token:      "test-token",
		APIURL:     srv.URL,
	})
	require.NoError(t, err)

	got, err := client.Labels(context.Background())
	require.NoError(t, err)

	want := map[string]string{
		"bug":      "Something is broken",
		"Question": "Further information requested",
		"TODO":     "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureLabel(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{{
		name:   "created",
		status: http.StatusCreated,
	}, {
		name:   "already exists",
		status: http.StatusUnprocessableEntity,
	}, {
		name:    "server error",
		status:  http.StatusInternalServerError,
		wantErr: true,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/repos/octo-org/widgets/labels", r.URL.Path)
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"name": "Alert"}`)
			}))

			err := client.EnsureLabel(context.Background(), "Alert", "FF0000", "spam or abuse")
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsOrgMember(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{{
		name:   "member",
		status: http.StatusNoContent,
		want:   true,
	}, {
		name:   "not a member",
		status: http.StatusNotFound,
		want:   false,
	}, {
		name:   "server error treated as non-member",
		status: http.StatusInternalServerError,
		want:   false,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/orgs/octo-org/members/somebody", r.URL.Path)
				w.WriteHeader(tc.status)
			}))

			got := client.IsOrgMember(context.Background(), "somebody")
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBlockUser(t *testing.T) {
	var blocked bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/orgs/octo-org/blocks/spammer", r.URL.Path)
		blocked = true
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.BlockUser(context.Background(), "spammer"))
	require.True(t, blocked)
}

func TestRawPRDiff(t *testing.T) {
	const diff = "diff --git a/main.go b/main.go\n+func main() {}\n"
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octo-org/widgets/pulls/7", r.URL.Path)
		require.Contains(t, r.Header.Get("Accept"), "diff")
		fmt.Fprint(w, diff)
	}))

	got, err := client.RawPRDiff(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, diff, got)
}

func TestUsername(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "steward-bot"}`)
	}))

	got, err := client.Username(context.Background())
	require.NoError(t, err)
	require.Equal(t, "steward-bot", got)
}
