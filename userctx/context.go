package userctx

import "context"

// Context key type
type contextKey string

const staffKey contextKey = "staff_identity"
const patientIDKey contextKey = "patient_id"

// StaffIdentity carries the authenticated staff user through a request
type StaffIdentity struct {
	ID       int
	Username string
	Nome     string
	Cognome  string
	Ruolo    string
}

// SetStaff adds the staff identity to the request context
func SetStaff(ctx context.Context, identity StaffIdentity) context.Context {
	return context.WithValue(ctx, staffKey, identity)
}

// GetStaff retrieves the staff identity from the request context
func GetStaff(ctx context.Context) (StaffIdentity, bool) {
	identity, ok := ctx.Value(staffKey).(StaffIdentity)
	return identity, ok
}

// SetPatientID adds the authenticated patient ID to the request context
func SetPatientID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, patientIDKey, id)
}

// GetPatientID retrieves the patient ID from the request context
func GetPatientID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(patientIDKey).(int)
	return id, ok
}
