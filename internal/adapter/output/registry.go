// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"

	"elfscan/internal/domain/ports"
)

type RendererRegistry struct {
	byFormat map[string]ports.OutputRenderer
}

func NewRendererRegistry(renderers ...ports.OutputRenderer) *RendererRegistry {
	m := make(map[string]ports.OutputRenderer, len(renderers))
	for _, r := range renderers {
		if r == nil {
			continue
		}
		m[strings.ToLower(r.Format())] = r
	}
	return &RendererRegistry{byFormat: m}
}

var _ ports.RendererRegistry = (*RendererRegistry)(nil)

func (r *RendererRegistry) Get(format string) (ports.OutputRenderer, bool) {
	if r == nil {
		return nil, false
	}
	out, ok := r.byFormat[strings.ToLower(format)]
	return out, ok
}

// List returns the registered renderers sorted by format name so usage text
// stays stable.
func (r *RendererRegistry) List() []ports.OutputRenderer {
	out := make([]ports.OutputRenderer, 0, len(r.byFormat))
	for _, v := range r.byFormat {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Format() < out[j].Format()
	})
	return out
}
