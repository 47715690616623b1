// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	elfadapter "elfscan/internal/adapter/elf"
	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
	"elfscan/internal/elftest"
)

type fakeScanner struct {
	files []string
}

func (s *fakeScanner) Scan(ctx context.Context, root string, includeExt []string) ([]string, error) {
	return s.files, nil
}

type fakeReader struct {
	data map[string][]byte
}

func (r *fakeReader) ReadFile(path string) ([]byte, error) {
	data, ok := r.data[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return data, nil
}

func newInspectFixture(files map[string][]byte) (*InspectObjectsUseCase, *fakeStorage) {
	var paths []string
	for path := range files {
		paths = append(paths, path)
	}
	storage := &fakeStorage{}
	uc := NewInspectObjectsUseCase(
		&fakeScanner{files: paths},
		&fakeReader{data: files},
		[]ports.ObjectDecoder{elfadapter.NewDecoder()},
		storage,
		nil,
		2,
	)
	return uc, storage
}

func TestInspectObjects(t *testing.T) {
	uc, storage := newInspectFixture(map[string][]byte{
		"/build/b.o": elftest.SampleObject(binary.LittleEndian),
		"/build/a.o": elftest.SampleObject(binary.BigEndian),
	})

	report, err := uc.Execute(context.Background(), InspectObjectsRequest{RootPath: "/build"})
	require.NoError(t, err)
	require.Same(t, report, storage.saved)

	// deterministic order regardless of worker scheduling
	require.Len(t, report.Objects, 2)
	require.Equal(t, "/build/a.o", report.Objects[0].Path)
	require.Equal(t, "/build/b.o", report.Objects[1].Path)

	require.Equal(t, 2, report.Totals.Objects)
	require.Equal(t, 12, report.Totals.Sections)
	require.Equal(t, 10, report.Totals.Symbols)
	require.Equal(t, 6, report.Totals.Functions)
	require.Equal(t, 4, report.Totals.GlobalSymbols)
	require.Equal(t, 6, report.Totals.LocalSymbols)
	require.Equal(t, map[string]int{"relocatable file": 2}, report.Totals.ByFileType)
	require.Empty(t, report.Warnings)
	require.NotEmpty(t, report.TypeCatalog)
}

func TestInspectObjectsWarnsOnNonELF(t *testing.T) {
	uc, _ := newInspectFixture(map[string][]byte{
		"/build/main.o": elftest.SampleObject(binary.LittleEndian),
		"/build/main.c": []byte("static int local_f(int a) { return a * 3; }\n"),
	})

	report, err := uc.Execute(context.Background(), InspectObjectsRequest{RootPath: "/build"})
	require.NoError(t, err)

	require.Len(t, report.Objects, 1)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "main.c")
	require.Contains(t, report.Warnings[0], "not an ELF object")
}

func TestInspectObjectsWarnsOnMissingSymtab(t *testing.T) {
	bare := elftest.NewBuilder().
		AddSection(elftest.Section{Name: ".text", Type: model.SectionProgbits, Data: []byte{0xc3}}).
		Bytes()

	uc, _ := newInspectFixture(map[string][]byte{"/build/bare.o": bare})

	report, err := uc.Execute(context.Background(), InspectObjectsRequest{RootPath: "/build"})
	require.NoError(t, err)

	require.Len(t, report.Objects, 1)
	require.Empty(t, report.Objects[0].Symbols)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "no symbol table")
}

func TestInspectObjectsEmptyRoot(t *testing.T) {
	uc, _ := newInspectFixture(map[string][]byte{})

	_, err := uc.Execute(context.Background(), InspectObjectsRequest{RootPath: ""})
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), InspectObjectsRequest{RootPath: "/empty"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no object files")
}
