package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// DashboardService computes the dashboard counters
type DashboardService interface {
	ComputeSnapshot(ctx context.Context) (*models.DashboardSnapshot, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

// ComputeSnapshot recomputes the four counters from current table state.
// The four reads are independent queries, not a transactional snapshot;
// concurrent writes between them can skew the counters slightly, which is
// acceptable for advisory dashboard data. Any query failure aborts the
// whole computation — a partial snapshot is never returned.
func (s *dashboardService) ComputeSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	now := time.Now()

	patients, err := s.dashboardRepo.CountActivePatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard snapshot: %w", err)
	}

	devices, err := s.dashboardRepo.CountActiveDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard snapshot: %w", err)
	}

	readingsToday, err := s.dashboardRepo.CountReadingsSince(ctx, models.StartOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard snapshot: %w", err)
	}

	alerts, err := s.dashboardRepo.CountAlertReadingsSince(ctx, models.Last24Hours(now))
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard snapshot: %w", err)
	}

	return &models.DashboardSnapshot{
		PatientsTotal: patients,
		DevicesActive: devices,
		ReadingsToday: readingsToday,
		AlertsActive:  alerts,
	}, nil
}
