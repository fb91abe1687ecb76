package service

import (
	"context"

	"github.com/agriscan/platform/internal/core/ports"
)

// FarmerService backs the inspector-facing farmer directory.
type FarmerService struct {
	users ports.UserRepository
}

func NewFarmerService(users ports.UserRepository) *FarmerService {
	return &FarmerService{users: users}
}

func (s *FarmerService) List(ctx context.Context, input ports.ListFarmersInput) (*ports.ListFarmersResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.users.ListFarmers(ctx, ports.ListFarmersFilter{
		State: input.State,
		City:  input.City,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListFarmersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
