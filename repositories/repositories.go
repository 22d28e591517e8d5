package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Staff     StaffRepository
	Patient   PatientRepository
	Device    DeviceRepository
	Reading   ReadingRepository
	AccessLog AccessLogRepository
	Dashboard DashboardRepository
	Media     MediaRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Staff:     NewStaffRepository(db),
		Patient:   NewPatientRepository(db),
		Device:    NewDeviceRepository(db),
		Reading:   NewReadingRepository(db),
		AccessLog: NewAccessLogRepository(db),
		Dashboard: NewDashboardRepository(db),
		Media:     NewMediaRepository(db),
	}
}
