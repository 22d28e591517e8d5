package models

// DashboardSnapshot holds the derived dashboard counters. It is recomputed
// on every request from current table state and never persisted.
type DashboardSnapshot struct {
	PatientsTotal int `json:"pazienti_totali"`
	DevicesActive int `json:"dispositivi_attivi"`
	ReadingsToday int `json:"misurazioni_oggi"`
	AlertsActive  int `json:"alert_attivi"`
}
