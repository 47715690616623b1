// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
)

type InspectObjectsRequest struct {
	RootPath   string
	IncludeExt []string
}

type InspectObjectsUseCase struct {
	scanner  ports.ObjectScanner
	reader   ports.FileReader
	decoders []ports.ObjectDecoder
	storage  ports.ReportStorage
	logger   *slog.Logger
	workers  int
}

func NewInspectObjectsUseCase(
	scanner ports.ObjectScanner,
	reader ports.FileReader,
	decoders []ports.ObjectDecoder,
	storage ports.ReportStorage,
	logger *slog.Logger,
	workers int,
) *InspectObjectsUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &InspectObjectsUseCase{
		scanner:  scanner,
		reader:   reader,
		decoders: decoders,
		storage:  storage,
		logger:   logger,
		workers:  workers,
	}
}

func (uc *InspectObjectsUseCase) Execute(ctx context.Context, req InspectObjectsRequest) (*model.ScanReport, error) {
	if req.RootPath == "" {
		return nil, fmt.Errorf("root path is required")
	}
	if uc.workers <= 0 {
		uc.workers = runtime.NumCPU()
		if uc.workers < 1 {
			uc.workers = 1
		}
	}

	candidates, err := uc.scanner.Scan(ctx, req.RootPath, req.IncludeExt)
	if err != nil {
		return nil, fmt.Errorf("scan for object files: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no object files found under %s", req.RootPath)
	}
	uc.logger.Debug("scan finished", "root", req.RootPath, "candidates", len(candidates))

	jobs := make(chan string)
	results := make(chan *model.Object)
	errCh := make(chan error, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				data, err := uc.reader.ReadFile(path)
				if err != nil {
					errCh <- fmt.Errorf("read %s: %w", path, err)
					continue
				}

				decoder := uc.selectDecoder(data)
				if decoder == nil {
					errCh <- fmt.Errorf("skipped %s: not an ELF object", path)
					continue
				}

				obj, err := decoder.Decode(path, data)
				if err != nil {
					uc.logger.Debug("decode failed", "path", path, "err", err)
					errCh <- err
					continue
				}

				results <- obj
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range candidates {
			jobs <- path
		}
	}()

	go func() {
		wg.Wait()
		close(results)
		close(errCh)
	}()

	var objects []model.Object
	for obj := range results {
		if obj != nil {
			objects = append(objects, *obj)
		}
	}

	var warnings []string
	for e := range errCh {
		if e != nil {
			warnings = append(warnings, e.Error())
		}
	}

	// Worker completion order is nondeterministic; reports should not be.
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Path < objects[j].Path
	})

	for _, obj := range objects {
		if !hasSymtab(obj) {
			warnings = append(warnings, fmt.Sprintf("%s: no symbol table", obj.Path))
		}
	}

	report := buildScanReport(req.RootPath, objects, warnings)

	if err := uc.storage.Save(ctx, req.RootPath, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	uc.logger.Debug("report saved", "root", req.RootPath, "objects", len(objects), "warnings", len(warnings))
	return report, nil
}

func (uc *InspectObjectsUseCase) selectDecoder(data []byte) ports.ObjectDecoder {
	for _, d := range uc.decoders {
		if d.Supports(data) {
			return d
		}
	}
	return nil
}

func hasSymtab(obj model.Object) bool {
	for _, s := range obj.Sections {
		if s.Type == model.SectionSymtab || s.Type == model.SectionDynsym {
			return true
		}
	}
	return false
}

func buildScanReport(root string, objects []model.Object, warnings []string) *model.ScanReport {
	totals := model.ScanTotals{}
	if len(objects) > 0 {
		totals.ByFileType = make(map[string]int)
	}

	for _, obj := range objects {
		totals.Objects++
		totals.Sections += len(obj.Sections)
		totals.Symbols += len(obj.Symbols)
		totals.ByFileType[obj.Header.Type.String()]++

		for _, sym := range obj.Symbols {
			switch sym.Bind {
			case model.BindLocal:
				totals.LocalSymbols++
			case model.BindGlobal:
				totals.GlobalSymbols++
			case model.BindWeak:
				totals.WeakSymbols++
			}
			if sym.Type == model.SymFunc {
				totals.Functions++
			}
		}
	}

	return &model.ScanReport{
		RootPath:    root,
		GeneratedAt: time.Now().UTC(),
		Objects:     objects,
		Totals:      totals,
		TypeCatalog: model.AllTypeSummaries(),
		Warnings:    warnings,
	}
}
