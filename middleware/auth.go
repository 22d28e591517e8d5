package middleware

import (
	"encoding/json"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/vitalink/telemonitor/userctx"
)

// RequireStaff ensures a staff session exists and puts the staff identity
// into the request context. API clients get a JSON 401 instead of a redirect.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		staffID, ok := sess.Get("staff_id").(int)
		if !ok {
			unauthorized(w, "staff session required")
			return
		}

		identity := userctx.StaffIdentity{
			ID:       staffID,
			Username: sessString(sess.Get("staff_username")),
			Nome:     sessString(sess.Get("staff_nome")),
			Cognome:  sessString(sess.Get("staff_cognome")),
			Ruolo:    sessString(sess.Get("staff_ruolo")),
		}

		ctx := userctx.SetStaff(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePatient ensures a patient session exists and puts the patient ID
// into the request context
func RequirePatient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		patientID, ok := sess.Get("patient_id").(int)
		if !ok {
			unauthorized(w, "patient session required")
			return
		}

		ctx := userctx.SetPatientID(r.Context(), patientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession admits either a staff or a patient session
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		if staffID, ok := sess.Get("staff_id").(int); ok {
			identity := userctx.StaffIdentity{
				ID:       staffID,
				Username: sessString(sess.Get("staff_username")),
				Nome:     sessString(sess.Get("staff_nome")),
				Cognome:  sessString(sess.Get("staff_cognome")),
				Ruolo:    sessString(sess.Get("staff_ruolo")),
			}
			next.ServeHTTP(w, r.WithContext(userctx.SetStaff(r.Context(), identity)))
			return
		}

		if patientID, ok := sess.Get("patient_id").(int); ok {
			next.ServeHTTP(w, r.WithContext(userctx.SetPatientID(r.Context(), patientID)))
			return
		}

		unauthorized(w, "authentication required")
	})
}

// unauthorized writes the standard failure envelope with a 401
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// sessString converts a session value to string, tolerating nil
func sessString(v interface{}) string {
	s, _ := v.(string)
	return s
}
