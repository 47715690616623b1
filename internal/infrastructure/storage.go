// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
)

type FileStorage struct{}

func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

var _ ports.ReportStorage = (*FileStorage)(nil)

// reportDir places .elfscan next to the root. When the root is a single
// file, the report lives beside it in the containing directory.
func reportDir(root string) string {
	if info, err := os.Stat(root); err == nil && info.Mode().IsRegular() {
		root = filepath.Dir(root)
	}
	return filepath.Join(root, ".elfscan")
}

func (s *FileStorage) Save(ctx context.Context, root string, report *model.ScanReport) error {
	_ = ctx

	dir := reportDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, "report.json")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func (s *FileStorage) Load(ctx context.Context, root string) (*model.ScanReport, error) {
	_ = ctx

	path := filepath.Join(reportDir(root), "report.json")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var report model.ScanReport
	dec := json.NewDecoder(f)
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
