// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"elfscan/internal/elftest"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestScanSniffsMagic(t *testing.T) {
	dir := t.TempDir()
	obj := elftest.SampleObject(binary.LittleEndian)

	objPath := writeFile(t, dir, "main.o", obj)
	binPath := writeFile(t, dir, "tool", obj) // extensionless executable
	writeFile(t, dir, "main.c", []byte("int main() { return 0; }\n"))
	writeFile(t, dir, "short", []byte{0x7f})

	files, err := NewFSScanner().Scan(context.Background(), dir, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{objPath, binPath}, files)
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	obj := elftest.SampleObject(binary.LittleEndian)

	objPath := writeFile(t, dir, "main.o", obj)
	cPath := writeFile(t, dir, "main.c", []byte("int main() { return 0; }\n"))
	writeFile(t, dir, "tool", obj)

	files, err := NewFSScanner().Scan(context.Background(), dir, []string{".o", ".c"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{objPath, cPath}, files)
}

func TestScanSkipsDotDirs(t *testing.T) {
	dir := t.TempDir()
	obj := elftest.SampleObject(binary.LittleEndian)

	objPath := writeFile(t, dir, "main.o", obj)

	hidden := filepath.Join(dir, ".elfscan")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeFile(t, hidden, "stale.o", obj)

	files, err := NewFSScanner().Scan(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Equal(t, []string{objPath}, files)
}

func TestScanSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	// An explicitly named file is returned even when it fails the filters.
	cPath := writeFile(t, dir, "main.c", []byte("int main() { return 0; }\n"))

	files, err := NewFSScanner().Scan(context.Background(), cPath, nil)
	require.NoError(t, err)
	require.Equal(t, []string{cPath}, files)
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.o", elftest.SampleObject(binary.LittleEndian))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSScanner().Scan(ctx, dir, nil)
	require.ErrorIs(t, err, context.Canceled)
}
