package services

import (
	"github.com/vitalink/telemonitor/repositories"
)

// Services holds all service instances
type Services struct {
	Auth      AuthService
	Patient   PatientService
	Device    DeviceService
	Reading   ReadingService
	AccessLog AccessLogService
	Dashboard DashboardService
	Media     MediaService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, uploadDir string) *Services {
	return &Services{
		Auth:      NewAuthService(repos.Staff, repos.Patient),
		Patient:   NewPatientService(repos.Patient, repos.Reading),
		Device:    NewDeviceService(repos.Device, repos.Patient),
		Reading:   NewReadingService(repos.Reading, repos.Patient),
		AccessLog: NewAccessLogService(repos.AccessLog),
		Dashboard: NewDashboardService(repos.Dashboard),
		Media:     NewMediaService(repos.Media, repos.Patient, uploadDir),
	}
}
