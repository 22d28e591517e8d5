package services

import (
	"context"
	"fmt"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// AccessLogService defines the access log recording and retrieval logic
type AccessLogService interface {
	Record(ctx context.Context, form *models.AccessLogForm) (*models.AccessLogEntry, error)
	List(ctx context.Context, filter models.AccessLogFilter) ([]models.AccessLogEntry, models.Pagination, error)
}

type accessLogService struct {
	accessLogRepo repositories.AccessLogRepository
}

// NewAccessLogService creates a new access log service
func NewAccessLogService(accessLogRepo repositories.AccessLogRepository) AccessLogService {
	return &accessLogService{accessLogRepo: accessLogRepo}
}

// Record validates and persists a single access event, returning the stored entry
func (s *accessLogService) Record(ctx context.Context, form *models.AccessLogForm) (*models.AccessLogEntry, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entry := &models.AccessLogEntry{
		UserID:    form.UserID,
		Username:  form.Username,
		Nome:      form.Nome,
		Cognome:   form.Cognome,
		Ruolo:     form.Ruolo,
		Action:    form.Action,
		PageURL:   form.PageURL,
		IPAddress: form.IPAddress,
		UserAgent: form.UserAgent,
	}

	if err := s.accessLogRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record access event: %w", err)
	}

	return entry, nil
}

// List retrieves entries matching the filter plus pagination metadata.
// The total is computed against the same filter, ignoring limit/offset.
func (s *accessLogService) List(ctx context.Context, filter models.AccessLogFilter) ([]models.AccessLogEntry, models.Pagination, error) {
	filter.Normalize()

	entries, err := s.accessLogRepo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list access logs: %w", err)
	}

	total, err := s.accessLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to count access logs: %w", err)
	}

	pagination := models.Pagination{
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		HasMore: filter.Offset+len(entries) < total,
	}

	return entries, pagination, nil
}
