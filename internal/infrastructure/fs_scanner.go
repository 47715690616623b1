// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"elfscan/internal/domain/ports"
)

type FSScanner struct{}

func NewFSScanner() *FSScanner {
	return &FSScanner{}
}

var _ ports.ObjectScanner = (*FSScanner)(nil)
var _ ports.FileReader = (*FSScanner)(nil)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Scan walks root collecting candidate object files. A non-empty extension
// list filters by extension; an empty list sniffs the 4-byte ELF magic so
// extensionless executables are found too. A root that is itself a regular
// file is returned as the single candidate without filtering, since the user
// named it explicitly.
func (s *FSScanner) Scan(ctx context.Context, root string, includeExt []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		return []string{root}, nil
	}

	allowed := make(map[string]struct{}, len(includeExt))
	for _, e := range includeExt {
		allowed[strings.ToLower(e)] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "node_modules", ".elfscan":
				return filepath.SkipDir
			default:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if len(allowed) > 0 {
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := allowed[ext]; !ok {
				return nil
			}
		} else if !hasELFMagic(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

func (s *FSScanner) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// hasELFMagic reads just enough of the file to check the magic. Unreadable
// files are treated as non-candidates; the walk should not fail because of
// one bad entry.
func hasELFMagic(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false
	}
	for i := range elfMagic {
		if magic[i] != elfMagic[i] {
			return false
		}
	}
	return true
}
