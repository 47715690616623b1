// SPDX-FileCopyrightText: 2025 elfscan contributors
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"

	"elfscan/internal/domain/model"
)

type ListTypesUseCase struct{}

func NewListTypesUseCase() *ListTypesUseCase {
	return &ListTypesUseCase{}
}

func (uc *ListTypesUseCase) Execute(ctx context.Context) []model.TypeSummary {
	_ = ctx
	return model.AllTypeSummaries()
}
