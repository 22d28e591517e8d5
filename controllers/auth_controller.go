package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/vitalink/telemonitor/authenticator"
	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/services"
	"github.com/vitalink/telemonitor/userctx"
)

// AuthController handles staff and patient authentication requests
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

// StaffLogin handles POST /auth/staff/login
func (c *AuthController) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var form models.StaffLoginForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := c.services.Auth.StaffLogin(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	c.establishStaffSession(r, user)
	c.recordStaffEvent(r, user, models.ActionLogin)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// StaffRegister handles POST /auth/staff/register
func (c *AuthController) StaffRegister(w http.ResponseWriter, r *http.Request) {
	var form models.StaffRegisterForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := c.services.Auth.StaffRegister(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// PatientLogin handles POST /auth/patient/login
func (c *AuthController) PatientLogin(w http.ResponseWriter, r *http.Request) {
	var form models.PatientLoginForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	patient, err := c.services.Auth.PatientLogin(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sess := session.GetSession(r)
	sess.Set("patient_id", patient.ID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

// PatientChangePassword handles POST /auth/patient/password
func (c *AuthController) PatientChangePassword(w http.ResponseWriter, r *http.Request) {
	patientID, ok := userctx.GetPatientID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "patient session required")
		return
	}

	var form models.PasswordChangeForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := c.services.Auth.ChangePatientPassword(r.Context(), patientID, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Logout handles POST /auth/logout for both staff and patients
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if identity, ok := userctx.GetStaff(r.Context()); ok {
		user := &models.StaffUser{
			ID:       identity.ID,
			Username: identity.Username,
			Nome:     identity.Nome,
			Cognome:  identity.Cognome,
			Ruolo:    identity.Ruolo,
		}
		c.recordStaffEvent(r, user, models.ActionLogout)
	}

	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		log.Printf("Failed to flush session: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// SSOLogin handles GET /auth/sso/login, redirecting to the identity provider
func (c *AuthController) SSOLogin(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := generateRandomState()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error", err.Error())
			return
		}

		// Save the state in the session to validate in the callback
		sess := session.GetSession(r)
		sess.Set("state", state)

		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// SSOCallback handles GET /auth/sso/callback
func (c *AuthController) SSOCallback(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		storedState := sess.Get("state")
		if storedState == nil {
			respondError(w, http.StatusBadRequest, "state not found in session")
			return
		}
		if r.URL.Query().Get("state") != storedState.(string) {
			respondError(w, http.StatusBadRequest, "invalid state parameter")
			return
		}

		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "failed to exchange authorization code", err.Error())
			return
		}

		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "failed to verify ID token", err.Error())
			return
		}

		nickname, _ := claims["nickname"].(string)
		email, _ := claims["email"].(string)

		user, err := c.services.Auth.StaffForSSO(r.Context(), nickname, email)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		sess.Delete("state")
		c.establishStaffSession(r, user)
		c.recordStaffEvent(r, user, models.ActionLogin)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// establishStaffSession stores the staff identity in the server session
func (c *AuthController) establishStaffSession(r *http.Request, user *models.StaffUser) {
	sess := session.GetSession(r)
	sess.Set("staff_id", user.ID)
	sess.Set("staff_username", user.Username)
	sess.Set("staff_nome", user.Nome)
	sess.Set("staff_cognome", user.Cognome)
	sess.Set("staff_ruolo", user.Ruolo)
}

// recordStaffEvent writes a login/logout entry; failures are logged, not surfaced
func (c *AuthController) recordStaffEvent(r *http.Request, user *models.StaffUser, action string) {
	form := &models.AccessLogForm{
		UserID:    user.ID,
		Username:  user.Username,
		Nome:      user.Nome,
		Cognome:   user.Cognome,
		Ruolo:     user.Ruolo,
		Action:    action,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	if _, err := c.services.AccessLog.Record(r.Context(), form); err != nil {
		log.Printf("Failed to record %s event: %v", action, err)
	}
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
