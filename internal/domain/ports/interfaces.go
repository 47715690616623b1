// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package ports

import (
	"context"

	"elfscan/internal/domain/model"
)

// ObjectScanner finds candidate object files under a root path. With a
// non-empty extension list it filters by extension; with an empty list
// implementations may sniff file contents instead.
type ObjectScanner interface {
	Scan(ctx context.Context, root string, includeExt []string) ([]string, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// ObjectDecoder turns raw file bytes into a decoded object model.
type ObjectDecoder interface {
	Name() string
	Supports(data []byte) bool
	Decode(path string, data []byte) (*model.Object, error)
}

type ReportStorage interface {
	Save(ctx context.Context, root string, report *model.ScanReport) error
	Load(ctx context.Context, root string) (*model.ScanReport, error)
}

type OutputRenderer interface {
	Format() string
	Render(report *model.ScanReport) (string, error)
}

type RendererRegistry interface {
	Get(format string) (OutputRenderer, bool)
	List() []OutputRenderer
}
