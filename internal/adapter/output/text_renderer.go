// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
)

var (
	accent = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	title  = color.New(color.FgYellow, color.Bold).SprintFunc()
	label  = color.New(color.FgHiBlack).SprintFunc()
	value  = color.New(color.FgWhite).SprintFunc()
	fileC  = color.New(color.FgBlue).SprintFunc()
	symC   = color.New(color.FgGreen).SprintFunc()
	warnC  = color.New(color.FgYellow).SprintFunc()
	muted  = color.New(color.FgHiBlack).SprintFunc()
)

// TextRenderer writes a colored human-readable report. Color is stripped
// automatically when stdout is not a terminal.
type TextRenderer struct {
	maxSymbols int
}

// NewTextRenderer builds a text renderer that prints at most maxSymbols
// symbol rows per object; zero or negative means no limit.
func NewTextRenderer(maxSymbols int) *TextRenderer {
	return &TextRenderer{maxSymbols: maxSymbols}
}

var _ ports.OutputRenderer = (*TextRenderer)(nil)

func (r *TextRenderer) Format() string {
	return "text"
}

func (r *TextRenderer) Render(report *model.ScanReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", accent("elfscan Report"))
	fmt.Fprintf(&b, "%s %s\n", label("Root:"), value(report.RootPath))
	fmt.Fprintf(&b, "%s %s\n", label("Generated at:"), value(report.GeneratedAt.Format(time.RFC3339)))

	fmt.Fprintf(&b, "\n%s\n", title("== Scan Summary =="))
	fmt.Fprintf(&b, "%s %s\n", label("Objects:"), value(fmt.Sprintf("%d", report.Totals.Objects)))
	fmt.Fprintf(&b, "%s %s\n", label("Sections:"), value(fmt.Sprintf("%d", report.Totals.Sections)))
	fmt.Fprintf(
		&b,
		"%s %s\n",
		label("Symbols:"),
		value(fmt.Sprintf("%d (local=%d, global=%d, weak=%d)",
			report.Totals.Symbols,
			report.Totals.LocalSymbols,
			report.Totals.GlobalSymbols,
			report.Totals.WeakSymbols,
		)),
	)
	fmt.Fprintf(&b, "%s %s\n", label("Functions:"), value(fmt.Sprintf("%d", report.Totals.Functions)))
	if len(report.Totals.ByFileType) > 0 {
		fmt.Fprintf(&b, "%s %s\n", label("By file type:"), value(formatByType(report.Totals.ByFileType)))
	}

	for i := range report.Objects {
		r.renderObject(&b, &report.Objects[i])
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Warnings =="))
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "%s %s\n", warnC("-"), warnC(w))
		}
	}

	return b.String(), nil
}

func (r *TextRenderer) renderObject(b *strings.Builder, obj *model.Object) {
	fmt.Fprintf(b, "\n%s\n", title(fmt.Sprintf("== %s ==", trimPath(obj.Path, 60))))
	fmt.Fprintf(
		b,
		"%s %s\n",
		label("Header:"),
		value(fmt.Sprintf("%s, %s, %s, %s",
			obj.Header.Class, obj.Header.Data, obj.Header.Type, obj.Header.Machine)),
	)
	fmt.Fprintf(
		b,
		"%s %s\n",
		label("Layout:"),
		value(fmt.Sprintf("entry=0x%x  sections=%d  symbols=%d",
			obj.Header.Entry, len(obj.Sections), len(obj.Symbols))),
	)

	if len(obj.Sections) > 0 {
		fmt.Fprintf(b, "\n%s\n", label("Sections:"))
		header := fmt.Sprintf("%4s %-20s %-10s %-4s %10s %10s %10s %8s",
			"Idx", "Name", "Type", "Flg", "Addr", "Offset", "Size", "Entsize")
		fmt.Fprintln(b, muted(header))
		fmt.Fprintln(b, muted(strings.Repeat("-", len(header))))
		for i, s := range obj.Sections {
			fmt.Fprintf(b, "%4d %s %-10s %-4s %10x %10x %10d %8d\n",
				i,
				fileC(fmt.Sprintf("%-20s", truncate(s.Name, 20))),
				s.Type,
				s.FlagString(),
				s.Addr,
				s.Offset,
				s.Size,
				s.Entsize,
			)
		}
	}

	if len(obj.Symbols) > 0 {
		shown := len(obj.Symbols)
		if r.maxSymbols > 0 && shown > r.maxSymbols {
			shown = r.maxSymbols
		}

		fmt.Fprintf(b, "\n%s\n", label(fmt.Sprintf("Symbols (%d of %d):", shown, len(obj.Symbols))))
		header := fmt.Sprintf("%4s %16s %6s %-8s %-7s %-9s %5s %s",
			"Idx", "Value", "Size", "Type", "Bind", "Vis", "Ndx", "Name")
		fmt.Fprintln(b, muted(header))
		fmt.Fprintln(b, muted(strings.Repeat("-", len(header))))
		for i := 0; i < shown; i++ {
			sym := obj.Symbols[i]
			fmt.Fprintf(b, "%4d %016x %6d %-8s %-7s %-9s %5s %s\n",
				i,
				sym.Value,
				sym.Size,
				sym.Type,
				sym.Bind,
				sym.Visibility,
				sectionIndex(sym.Shndx),
				symC(sym.Name),
			)
		}
	}
}

func formatByType(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for name, n := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", name, n))
	}
	// map order is random; keep output stable
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// sectionIndex renders a symbol's section index the way readelf spells the
// special values.
func sectionIndex(ndx uint16) string {
	switch ndx {
	case model.ShnUndef:
		return "und"
	case model.ShnAbs:
		return "abs"
	case model.ShnCommon:
		return "com"
	default:
		return fmt.Sprintf("%d", ndx)
	}
}

func trimPath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	if max <= 1 {
		return path[len(path)-max:]
	}
	return "…" + path[len(path)-max+1:]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
