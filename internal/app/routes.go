package app

import (
	"github.com/gorilla/mux"
	"github.com/padelcoach/padelcoach/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Weekly planning
	r.HandleFunc("/api/weekly-planning", deps.WeeklyPlanHandler.GetWeeklyPlan).Methods("GET")
	r.HandleFunc("/api/weekly-planning", deps.WeeklyPlanHandler.AddItem).Methods("POST")
	r.HandleFunc("/api/weekly-planning/day", deps.WeeklyPlanHandler.GetDayDetails).Methods("GET")
	r.HandleFunc("/api/weekly-planning/module/{itemId}", deps.WeeklyPlanHandler.UpdateItem).Methods("PUT")
	r.HandleFunc("/api/weekly-planning/module/{itemId}", deps.WeeklyPlanHandler.RemoveItem).Methods("DELETE")
	r.HandleFunc("/api/weekly-planning/export-to-google", deps.GoogleHandler.ExportWeek).Methods("POST")

	// Content catalog
	r.HandleFunc("/api/content/module", deps.ContentHandler.ListModules).Methods("GET")
	r.HandleFunc("/api/content/exercise", deps.ContentHandler.ListExercises).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
}
