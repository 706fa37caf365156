/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package linkcheck

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newMarkdownTable creates a table writer that renders GitHub-flavored
// markdown, so the report can be pasted into an issue or job summary.
func newMarkdownTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 120,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// Report renders a markdown summary of the scan: one row per file,
// then the unreachable URLs.
func Report(results []FileResult) string {
	var buf bytes.Buffer
	table := newMarkdownTable([]string{"File", "URLs", "Status"}, &buf)
	for _, res := range results {
		status := "✅"
		if len(res.Bad) > 0 {
			status = fmt.Sprintf("❌ %d unreachable", len(res.Bad))
		}
		_ = table.Append([]string{res.Path, strconv.Itoa(res.Checked), status})
	}
	_ = table.Render()

	out := "## Link Check\n\n" + buf.String()
	var bad []string
	for _, res := range results {
		for _, u := range res.Bad {
			bad = append(bad, fmt.Sprintf("- %s: %s", res.Path, u))
		}
	}
	if len(bad) > 0 {
		out += "\nUnreachable URLs:\n\n" + strings.Join(bad, "\n") + "\n"
	}
	return out
}
