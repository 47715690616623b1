// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"elfscan/internal/domain/model"
)

func testReport() *model.ScanReport {
	return &model.ScanReport{
		RootPath:    "/build",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Objects: []model.Object{
			{
				Path: "/build/main.o",
				Header: model.Header{
					Class:   model.Class64,
					Data:    model.DataLSB,
					Type:    model.FileTypeRel,
					Machine: model.MachineX86_64,
				},
				Sections: []model.Section{
					{Name: "", Type: model.SectionNull},
					{Name: ".text", Type: model.SectionProgbits, Flags: 0x6, Size: 46},
					{Name: ".data", Type: model.SectionProgbits, Flags: 0x3},
				},
				Symbols: []model.Symbol{
					{Name: "local_f", Bind: model.BindLocal, Type: model.SymFunc, Shndx: 1, Size: 15},
					{Name: "global_f", Bind: model.BindGlobal, Type: model.SymFunc, Shndx: 1, Value: 15, Size: 15},
					{Name: "main", Bind: model.BindGlobal, Type: model.SymFunc, Shndx: 1, Value: 30, Size: 16},
				},
			},
		},
		Totals: model.ScanTotals{
			Objects:       1,
			Sections:      3,
			Symbols:       3,
			Functions:     3,
			LocalSymbols:  1,
			GlobalSymbols: 2,
			ByFileType:    map[string]int{"relocatable file": 1},
		},
		TypeCatalog: model.AllTypeSummaries(),
		Warnings:    []string{"/build/main.c: not an ELF object"},
	}
}

func TestTextRenderer(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	out, err := NewTextRenderer(0).Render(testReport())
	require.NoError(t, err)

	require.Contains(t, out, "elfscan Report")
	require.Contains(t, out, "/build/main.o")
	require.Contains(t, out, "relocatable file")
	require.Contains(t, out, ".data")
	require.Contains(t, out, "global_f")
	require.Contains(t, out, "Symbols (3 of 3)")
	require.Contains(t, out, "not an ELF object")
}

func TestTextRendererCapsSymbols(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	out, err := NewTextRenderer(2).Render(testReport())
	require.NoError(t, err)

	require.Contains(t, out, "Symbols (2 of 3)")
	require.Contains(t, out, "global_f")
	require.NotContains(t, out, " main\n")
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(testReport())
	require.NoError(t, err)

	var decoded model.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, "/build", decoded.RootPath)
	require.Len(t, decoded.Objects, 1)
	require.Equal(t, model.FileTypeRel, decoded.Objects[0].Header.Type)
}

func TestRegistry(t *testing.T) {
	reg := NewRendererRegistry(NewTextRenderer(0), NewJSONRenderer())

	r, ok := reg.Get("TEXT")
	require.True(t, ok)
	require.Equal(t, "text", r.Format())

	_, ok = reg.Get("sarif")
	require.False(t, ok)

	var formats []string
	for _, r := range reg.List() {
		formats = append(formats, r.Format())
	}
	require.Equal(t, []string{"json", "text"}, formats)
}

func TestTrimHelpers(t *testing.T) {
	require.Equal(t, "short", trimPath("short", 10))
	long := strings.Repeat("a", 20) + "/main.o"
	trimmed := trimPath(long, 10)
	require.True(t, strings.HasSuffix(trimmed, "main.o"))
	require.True(t, strings.HasPrefix(trimmed, "…"))

	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab…", truncate("abcdef", 3))
}
