package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

type AlertService struct {
	repo   ports.AlertRepository
	logger zerolog.Logger
}

func NewAlertService(repo ports.AlertRepository, logger zerolog.Logger) *AlertService {
	return &AlertService{repo: repo, logger: logger}
}

func (s *AlertService) Create(ctx context.Context, input ports.CreateAlertInput) (*domain.Alert, error) {
	alert := &domain.Alert{
		Title:       input.Title,
		Description: input.Description,
		Severity:    domain.AlertSeverity(input.Severity),
		TargetState: input.TargetState,
		TargetCity:  input.TargetCity,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   input.ExpiresAt,
	}

	created, err := s.repo.Create(ctx, alert)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create alert")
		return nil, err
	}

	s.logger.Info().
		Str("alert_id", created.ID).
		Str("severity", input.Severity).
		Str("target_state", input.TargetState).
		Msg("alert created")

	return created, nil
}

func (s *AlertService) Update(ctx context.Context, id string, input ports.UpdateAlertInput) (*domain.Alert, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		alert.Title = *input.Title
	}
	if input.Description != nil {
		alert.Description = *input.Description
	}
	if input.Severity != nil {
		alert.Severity = domain.AlertSeverity(*input.Severity)
	}
	if input.ExpiresAt != nil {
		alert.ExpiresAt = *input.ExpiresAt
	}

	return s.repo.Update(ctx, alert)
}

func (s *AlertService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("alert_id", id).Msg("alert deleted")
	return nil
}

func (s *AlertService) List(ctx context.Context, input ports.ListAlertsInput) (*ports.ListAlertsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListAlertsFilter{
		Severity: input.Severity,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListAlertsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
