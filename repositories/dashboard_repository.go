package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// DashboardRepository provides the aggregate counters for the dashboard.
// Each method is a single independent read; no snapshot isolation is applied
// across them (the counters are advisory, see the service layer).
type DashboardRepository interface {
	CountActivePatients(ctx context.Context) (int, error)
	CountActiveDevices(ctx context.Context) (int, error)
	CountReadingsSince(ctx context.Context, since time.Time) (int, error)
	CountAlertReadingsSince(ctx context.Context, since time.Time) (int, error)
}

type dashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *sql.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountActivePatients returns the number of patients with active = true
func (r *dashboardRepository) CountActivePatients(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients WHERE active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active patients: %w", err)
	}
	return count, nil
}

// CountActiveDevices returns the number of devices with active = true
func (r *dashboardRepository) CountActiveDevices(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devices WHERE active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active devices: %w", err)
	}
	return count, nil
}

// CountReadingsSince returns the number of readings recorded at or after since
func (r *dashboardRepository) CountReadingsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM health_data WHERE recorded_at >= ?`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return count, nil
}

// CountAlertReadingsSince counts readings at or after since where any present
// vital violates its clinical bound. Null fields contribute nothing.
func (r *dashboardRepository) CountAlertReadingsSince(ctx context.Context, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM health_data
		WHERE recorded_at >= ?
		  AND (
		    (heart_rate IS NOT NULL AND (heart_rate < ? OR heart_rate > ?))
		    OR (spo2 IS NOT NULL AND spo2 < ?)
		    OR (systolic_bp IS NOT NULL AND (systolic_bp < ? OR systolic_bp > ?))
		    OR (diastolic_bp IS NOT NULL AND (diastolic_bp < ? OR diastolic_bp > ?))
		    OR (temperature IS NOT NULL AND (temperature < ? OR temperature > ?))
		  )
	`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		since,
		models.HeartRateMin, models.HeartRateMax,
		models.SpO2Min,
		models.SystolicBPMin, models.SystolicBPMax,
		models.DiastolicBPMin, models.DiastolicBPMax,
		models.TemperatureMin, models.TemperatureMax,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alert readings: %w", err)
	}
	return count, nil
}
