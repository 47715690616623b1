// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package integration

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	elfadapter "elfscan/internal/adapter/elf"
	outputadapter "elfscan/internal/adapter/output"
	"elfscan/internal/domain/ports"
	"elfscan/internal/elftest"
	"elfscan/internal/infrastructure"
	"elfscan/internal/usecase"
)

// fixtureDir lays out what a tiny C project build tree looks like: the
// source file and the object compiled from it.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	src, err := os.ReadFile(filepath.Join("..", "data", "main.c"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), src, 0o644))

	obj := elftest.SampleObject(binary.LittleEndian)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.o"), obj, 0o644))

	return dir
}

func TestInspectSampleBuildTree(t *testing.T) {
	root := fixtureDir(t)
	ctx := context.Background()

	scanner := infrastructure.NewFSScanner()
	storage := infrastructure.NewFileStorage()

	uc := usecase.NewInspectObjectsUseCase(
		scanner,
		scanner,
		[]ports.ObjectDecoder{elfadapter.NewDecoder()},
		storage,
		nil,
		2,
	)

	// Extension filtering pulls in main.c, which must surface as a warning
	// rather than fail the run.
	report, err := uc.Execute(ctx, usecase.InspectObjectsRequest{
		RootPath:   root,
		IncludeExt: []string{".o", ".c"},
	})
	require.NoError(t, err)

	require.Len(t, report.Objects, 1)
	require.Equal(t, filepath.Join(root, "main.o"), report.Objects[0].Path)
	require.Equal(t, ".data", report.Objects[0].Sections[2].Name)
	require.Equal(t, 3, report.Totals.Functions)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "main.c")

	// The saved report renders from disk through the report use case.
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	registry := outputadapter.NewRendererRegistry(
		outputadapter.NewTextRenderer(0),
		outputadapter.NewJSONRenderer(),
	)
	reportUC := usecase.NewGenerateReportUseCase(storage, registry)

	text, err := reportUC.Execute(ctx, usecase.GenerateReportRequest{RootPath: root, Format: "text"})
	require.NoError(t, err)
	require.Contains(t, text, "main.o")
	require.Contains(t, text, "local_f")
	require.Contains(t, text, "global_f")

	jsonOut, err := reportUC.Execute(ctx, usecase.GenerateReportRequest{RootPath: root, Format: "json"})
	require.NoError(t, err)
	require.Contains(t, jsonOut, `"relocatable file"`)
}

func TestInspectByMagicSniffing(t *testing.T) {
	root := fixtureDir(t)
	ctx := context.Background()

	scanner := infrastructure.NewFSScanner()
	storage := infrastructure.NewFileStorage()

	uc := usecase.NewInspectObjectsUseCase(
		scanner,
		scanner,
		[]ports.ObjectDecoder{elfadapter.NewDecoder()},
		storage,
		nil,
		2,
	)

	// No extension list: main.c is never a candidate, so no warnings.
	report, err := uc.Execute(ctx, usecase.InspectObjectsRequest{RootPath: root})
	require.NoError(t, err)

	require.Len(t, report.Objects, 1)
	require.Empty(t, report.Warnings)
	require.Equal(t, 1, report.Totals.Objects)
}
