// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"

	"elfscan/internal/domain/model"
	"elfscan/internal/domain/ports"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

var _ ports.OutputRenderer = (*JSONRenderer)(nil)

func (r *JSONRenderer) Format() string {
	return "json"
}

func (r *JSONRenderer) Render(report *model.ScanReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
