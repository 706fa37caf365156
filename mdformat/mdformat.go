/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package mdformat

import (
	"context"
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/chainguard-dev/clog"
)

// block is one fenced Go sample located in a document. start and end
// are the line offsets of the opening and closing fences; body holds
// the lines between them, still carrying the fence indentation.
type block struct {
	indent string
	body   []string
	start  int
	end    int
}

// openingFence reports whether line opens a Go code fence, returning
// the leading spaces shared by the pair of fences.
func openingFence(line string) (string, bool) {
	tag := strings.TrimLeft(line, " ")
	switch tag {
	case "```go", "```golang":
		return line[:len(line)-len(tag)], true
	}
	return "", false
}

// scanBlocks locates the fenced Go samples in lines. The closing fence
// must sit at the same indentation as the opening one; an unterminated
// fence is not a block.
func scanBlocks(lines []string) []block {
	var blocks []block
	for i := 0; i < len(lines); i++ {
		indent, ok := openingFence(lines[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if lines[j] != indent+"```" {
				continue
			}
			blocks = append(blocks, block{indent: indent, body: lines[i+1 : j], start: i, end: j})
			i = j
			break
		}
	}
	return blocks
}

// reformat runs one sample through gofmt, returning the replacement
// body lines and whether anything changed.
func reformat(ctx context.Context, b block) ([]string, bool) {
	stripped := make([]string, 0, len(b.body))
	for _, line := range b.body {
		stripped = append(stripped, strings.TrimPrefix(line, b.indent))
	}
	code := strings.Join(stripped, "\n")
	if strings.TrimSpace(code) == "" {
		return nil, false
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		clog.FromContext(ctx).Warnf("Leaving Go sample at line %d unformatted: %v", b.start+1, err)
		return nil, false
	}
	out := strings.TrimRight(string(formatted), "\n")
	if out == code {
		return nil, false
	}

	body := strings.Split(out, "\n")
	for i, line := range body {
		if line != "" {
			body[i] = b.indent + line
		}
	}
	return body, true
}

// FormatDocument rewrites the fenced Go samples in doc, returning the
// updated document and the number of samples that changed.
func FormatDocument(ctx context.Context, doc string) (string, int) {
	lines := strings.Split(doc, "\n")

	var (
		out     = make([]string, 0, len(lines))
		changed int
		next    int
	)
	for _, b := range scanBlocks(lines) {
		body, ok := reformat(ctx, b)
		if !ok {
			continue
		}
		out = append(out, lines[next:b.start+1]...)
		out = append(out, body...)
		next = b.end
		changed++
	}
	out = append(out, lines[next:]...)
	return strings.Join(out, "\n"), changed
}

// FormatFile rewrites the Go samples in the markdown file at path,
// writing it back only when a sample changed. It returns the number of
// samples rewritten.
func FormatFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	updated, changed := FormatDocument(ctx, string(raw))
	if changed == 0 {
		return 0, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return changed, nil
}

// Process formats every markdown file under root, returning the number
// of files it rewrote.
func Process(ctx context.Context, root string) (int, error) {
	log := clog.FromContext(ctx)

	files, err := MarkdownFiles(root)
	if err != nil {
		return 0, err
	}
	log.Infof("Formatting Go samples in %d markdown files", len(files))

	var rewrote int
	for _, path := range files {
		changed, err := FormatFile(ctx, path)
		if err != nil {
			return rewrote, err
		}
		if changed > 0 {
			log.With("path", path).Infof("Reformatted %d Go samples", changed)
			rewrote++
		}
	}
	return rewrote, nil
}
