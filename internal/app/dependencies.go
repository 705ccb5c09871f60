package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padelcoach/padelcoach/internal/config"
	"github.com/padelcoach/padelcoach/internal/utils"
	"github.com/padelcoach/padelcoach/pkg/content"
	"github.com/padelcoach/padelcoach/pkg/google"
	"github.com/padelcoach/padelcoach/pkg/user"
	"github.com/padelcoach/padelcoach/pkg/weekly_plan"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	ContentCatalog content.Catalog
	ContentHandler *content.Handler

	WeeklyPlanRepo    weekly_plan.Repository
	WeeklyPlanService weekly_plan.Service
	WeeklyPlanHandler *weekly_plan.Handler

	GoogleAuth     *google.GoogleAuth
	GoogleExporter google.Exporter
	GoogleHandler  *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ContentCatalog = content.NewClient(cfg.Content)
	deps.ContentHandler = content.NewHandler(deps.ContentCatalog)

	deps.WeeklyPlanRepo = weekly_plan.NewRepo(db)
	deps.WeeklyPlanService = weekly_plan.NewService(deps.WeeklyPlanRepo, deps.ContentCatalog, deps.Clock)
	deps.WeeklyPlanHandler = weekly_plan.NewHandler(deps.WeeklyPlanService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleExporter = google.NewExporter(deps.GoogleAuth, deps.WeeklyPlanService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleExporter)

	return deps
}
