package handlers

import (
	"time"

	"cloud-notes/app"

	"github.com/gofiber/fiber/v2"
)

func databaseStatus(a *app.App) string {
	if err := a.DB.Ping(); err != nil {
		return "disconnected"
	}
	return "connected"
}

// Index returns the service descriptor with a live database probe
func Index(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{
			"message":         "Cloud Notes API",
			"version":         "1.0",
			"status":          "operational",
			"storage":         "MySQL",
			"database_status": databaseStatus(a),
			"database_host":   a.Config.Database.Host,
			"database_port":   a.Config.Database.Port,
			"endpoints": fiber.Map{
				"GET /health":                 "Health check",
				"GET /api/notes":              "List all notes",
				"POST /api/notes":             "Create a note",
				"GET /api/notes/:id":          "Get a note by ID",
				"PUT /api/notes/:id":          "Update a note",
				"DELETE /api/notes/:id":       "Delete a note",
				"POST /api/notes/:id/restore": "Restore a deleted note",
				"GET /api/stats":              "Note statistics",
				"GET /api/search?q=":          "Search notes",
			},
		})
	}
}

// Health reports service and database health
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := databaseStatus(a)

		status := "healthy"
		if db != "connected" {
			status = "degraded"
		}

		return success(c, fiber.Map{
			"status":        status,
			"service":       "cloud-notes-api",
			"timestamp":     time.Now().Format(time.RFC3339),
			"database":      db,
			"database_host": a.Config.Database.Host,
			"database_port": a.Config.Database.Port,
			"database_name": a.Config.Database.Name,
		})
	}
}
