/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package mdformat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  []string
		// want is nil when the document must come back unchanged.
		want    []string
		changed int
	}{{
		name: "top level sample gains gofmt indentation",
		doc: []string{
			"# Title",
			"",
			"```go",
			"func add(a, b int) int {",
			"return a + b",
			"}",
			"```",
			"",
			"done",
			"",
		},
		want: []string{
			"# Title",
			"",
			"```go",
			"func add(a, b int) int {",
			"\treturn a + b",
			"}",
			"```",
			"",
			"done",
			"",
		},
		changed: 1,
	}, {
		name: "sample indented inside a list keeps its indentation",
		doc: []string{
			"- step:",
			"",
			"    ```go",
			"    x:=1",
			"    fmt.Println(x)",
			"    ```",
			"",
		},
		want: []string{
			"- step:",
			"",
			"    ```go",
			"    x := 1",
			"    fmt.Println(x)",
			"    ```",
			"",
		},
		changed: 1,
	}, {
		name: "blank lines inside a sample carry no indentation",
		doc: []string{
			"Steps:",
			"",
			"  ```go",
			"  a:=1",
			"  ",
			"  b:=2",
			"  ```",
		},
		want: []string{
			"Steps:",
			"",
			"  ```go",
			"  a := 1",
			"",
			"  b := 2",
			"  ```",
		},
		changed: 1,
	}, {
		name: "golang tag is recognized",
		doc: []string{
			"```golang",
			"x  :=  2",
			"```",
		},
		want: []string{
			"```golang",
			"x := 2",
			"```",
		},
		changed: 1,
	}, {
		name: "formatted sample is untouched",
		doc: []string{
			"```go",
			"package main",
			"",
			"import \"fmt\"",
			"",
			"func main() {",
			"\tfmt.Println(\"hi\")",
			"}",
			"```",
			"",
		},
	}, {
		name: "sample that does not parse is left alone",
		doc: []string{
			"```go",
			"func broken( {",
			"```",
		},
	}, {
		name: "other languages are left alone",
		doc: []string{
			"```python",
			"x=1",
			"```",
		},
	}, {
		name: "unterminated fence is not a sample",
		doc: []string{
			"```go",
			"x:=1",
		},
	}, {
		name: "closing fence must match the opening indentation",
		doc: []string{
			"  ```go",
			"  x:=1",
			"```",
		},
	}, {
		name: "empty sample is ignored",
		doc: []string{
			"```go",
			"```",
		},
	}, {
		name: "only the samples that need it change",
		doc: []string{
			"```go",
			"x:=1",
			"```",
			"",
			"between",
			"",
			"```go",
			"package main",
			"",
			"import \"fmt\"",
			"",
			"func main() {",
			"\tfmt.Println(\"hi\")",
			"}",
			"```",
		},
		want: []string{
			"```go",
			"x := 1",
			"```",
			"",
			"between",
			"",
			"```go",
			"package main",
			"",
			"import \"fmt\"",
			"",
			"func main() {",
			"\tfmt.Println(\"hi\")",
			"}",
			"```",
		},
		changed: 1,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == nil {
				want = tt.doc
			}

			got, changed := FormatDocument(context.Background(), strings.Join(tt.doc, "\n"))
			if changed != tt.changed {
				t.Errorf("FormatDocument() changed = %d, want %d", changed, tt.changed)
			}
			if diff := cmp.Diff(strings.Join(want, "\n"), got); diff != "" {
				t.Errorf("FormatDocument() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	doc := strings.Join([]string{"# Demo", "", "```go", "x:=1", "```", ""}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	changed, err := FormatFile(context.Background(), path)
	require.NoError(t, err)
	if changed != 1 {
		t.Errorf("FormatFile() changed = %d, want 1", changed)
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := strings.Join([]string{"# Demo", "", "```go", "x := 1", "```", ""}, "\n")
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("FormatFile() result mismatch (-want +got):\n%s", diff)
	}

	// A second pass settles.
	changed, err = FormatFile(context.Background(), path)
	require.NoError(t, err)
	if changed != 0 {
		t.Errorf("FormatFile() second pass changed = %d, want 0", changed)
	}
}

func TestFormatFileMissing(t *testing.T) {
	if _, err := FormatFile(context.Background(), filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("FormatFile() expected an error for a missing file")
	}
}
