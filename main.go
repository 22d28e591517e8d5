package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitalink/telemonitor/authenticator"
	"github.com/vitalink/telemonitor/controllers"
	"github.com/vitalink/telemonitor/database"
	authmiddleware "github.com/vitalink/telemonitor/middleware"
	"github.com/vitalink/telemonitor/repositories"
	"github.com/vitalink/telemonitor/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "telemonitor.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos, uploadDir)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Staff SSO is optional; enabled when the identity provider is configured
	sso, err := newSSOProvider()
	if err != nil {
		log.Fatalf("Failed to initialize SSO provider: %v", err)
	}

	// Set up router
	r, err := setupRouter(ctrl, sso)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Telemonitor starting on port %s\n", port)
	fmt.Printf("🗃️  Database: %s\n", dbPath)
	fmt.Printf("📁 Uploads: %s\n", uploadDir)

	log.Fatal(http.ListenAndServe(":"+port, r))
}

// newSSOProvider builds the OIDC provider when SSO_* env vars are set
func newSSOProvider() (authenticator.Provider, error) {
	domain := os.Getenv("SSO_DOMAIN")
	if domain == "" {
		return nil, nil
	}

	return authenticator.NewOpenIDProvider(authenticator.OpenIDConfig{
		Domain:       domain,
		ClientID:     os.Getenv("SSO_CLIENT_ID"),
		ClientSecret: os.Getenv("SSO_CLIENT_SECRET"),
		CallbackURL:  os.Getenv("SSO_CALLBACK_URL"),
	})
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, sso authenticator.Provider) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	// Determine if we should use secure cookies (HTTPS)
	useSecureCookies := os.Getenv("USE_HTTPS") == "true"

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "telemonitor_session",
		Secure:         useSecureCookies,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Post("/auth/staff/login", ctrl.Auth.StaffLogin)
	r.Post("/auth/staff/register", ctrl.Auth.StaffRegister)
	r.Post("/auth/patient/login", ctrl.Auth.PatientLogin)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "telemonitor"}`)
	})

	if sso != nil {
		r.Get("/auth/sso/login", ctrl.Auth.SSOLogin(sso))
		r.Get("/auth/sso/callback", ctrl.Auth.SSOCallback(sso))
	}

	// SESSION ROUTES (staff or patient)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireSession)
		r.Post("/auth/logout", ctrl.Auth.Logout)
	})

	// PATIENT ROUTES
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequirePatient)
		r.Post("/auth/patient/password", ctrl.Auth.PatientChangePassword)
	})

	// STAFF ROUTES
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireStaff)

		// Access log routes
		r.Route("/access-logs", func(r chi.Router) {
			r.Get("/", ctrl.AccessLog.List)
			r.Post("/", ctrl.AccessLog.Create)
		})

		// Dashboard routes
		r.Get("/dashboard/stats", ctrl.Dashboard.Stats)

		// Patient management routes
		r.Route("/patients", func(r chi.Router) {
			r.Get("/", ctrl.Patient.List)
			r.Post("/", ctrl.Patient.Create)
			r.Get("/{id}", ctrl.Patient.Get)
			r.Put("/{id}", ctrl.Patient.Update)
			r.Delete("/{id}", ctrl.Patient.Delete)
			r.Post("/{id}/activate", ctrl.Patient.Activate)
			r.Post("/{id}/deactivate", ctrl.Patient.Deactivate)

			// Reading routes
			r.Get("/{id}/readings", ctrl.Reading.ListByPatient)
			r.Post("/{id}/readings", ctrl.Reading.Create)
			r.Get("/{id}/readings/latest", ctrl.Reading.Latest)
		})

		// Device management routes
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", ctrl.Device.List)
			r.Post("/", ctrl.Device.Create)
			r.Get("/{id}", ctrl.Device.Get)
			r.Put("/{id}", ctrl.Device.Update)
			r.Delete("/{id}", ctrl.Device.Delete)
		})

		// Media upload routes
		r.Route("/uploads", func(r chi.Router) {
			r.Get("/", ctrl.Media.List)
			r.Post("/{kind}", ctrl.Media.Upload)
		})
	})

	return r, nil
}
