package app

import (
	"log/slog"

	"cloud-notes/config"
	"cloud-notes/database"
	"cloud-notes/services"
	"cloud-notes/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Notes     *services.NoteService
	DB        *database.DB
	Config    *config.Config
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(notes *services.NoteService, db *database.DB, cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Notes:     notes,
		DB:        db,
		Config:    cfg,
		Validator: validator.New(),
		Logger:    logger,
	}
}
