package handlers

import (
	"errors"
	"fmt"
	"strings"

	"cloud-notes/app"
	"cloud-notes/models"
	"cloud-notes/services"
	"cloud-notes/validator"

	"github.com/gofiber/fiber/v2"
)

// CreateNote creates a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Request body is required")
		}

		if err := a.Validator.Validate(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				return badRequest(c, "Title is required and cannot be empty")
			}
			return badRequest(c, err.Error())
		}

		note, err := a.Notes.Create(req.Title, req.Content)
		if err != nil {
			if errors.Is(err, services.ErrEmptyTitle) {
				return badRequest(c, "Title is required and cannot be empty")
			}
			return serverError(c, "Failed to create note", err)
		}

		a.Logger.Info("note created", "id", note.ID, "title", note.Title)

		resp := noteFields(note)
		resp["message"] = "Note created successfully"
		return created(c, resp)
	}
}

// ListNotes returns all active notes, newest first
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Notes.ListActive()
		if err != nil {
			return serverError(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"notes":   notes,
			"count":   len(notes),
			"message": fmt.Sprintf("Found %d notes", len(notes)),
		})
	}
}

// GetNote returns a single active note by id
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseNoteID(c)
		if err != nil {
			return badRequest(c, "Invalid note ID")
		}

		note, err := a.Notes.Get(id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoteNotFound):
				return notFound(c, fmt.Sprintf("Note with ID %d not found", id))
			case errors.Is(err, services.ErrNoteDeleted):
				// Deleted notes are invisible to reads; the log keeps
				// the distinction, the API does not.
				a.Logger.Info("read of deleted note", "id", id)
				return notFound(c, fmt.Sprintf("Note with ID %d was deleted", id))
			default:
				return serverError(c, "Failed to fetch note", err)
			}
		}

		return c.JSON(noteFields(note))
	}
}

// UpdateNote applies a partial update to an active note
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseNoteID(c)
		if err != nil {
			return badRequest(c, "Invalid note ID")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Request body is required")
		}

		updated, err := a.Notes.Update(id, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyTitle):
				return badRequest(c, "Title cannot be empty")
			case errors.Is(err, services.ErrNoteNotFound):
				return notFound(c, fmt.Sprintf("Note with ID %d not found", id))
			case errors.Is(err, services.ErrNoteDeleted):
				return badRequest(c, "Cannot update a deleted note")
			default:
				return serverError(c, "Failed to update note", err)
			}
		}

		if !updated {
			return success(c, fiber.Map{"message": "No changes detected"})
		}

		a.Logger.Info("note updated", "id", id)

		return success(c, fiber.Map{
			"id":      id,
			"message": "Note updated successfully",
		})
	}
}

// DeleteNote soft-deletes an active note
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseNoteID(c)
		if err != nil {
			return badRequest(c, "Invalid note ID")
		}

		if err := a.Notes.SoftDelete(id); err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				return notFound(c, "Note not found or already deleted")
			}
			return serverError(c, "Failed to delete note", err)
		}

		a.Logger.Info("note soft-deleted", "id", id)

		return success(c, fiber.Map{
			"id":      id,
			"message": "Note deleted successfully",
		})
	}
}

// RestoreNote brings a soft-deleted note back
func RestoreNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseNoteID(c)
		if err != nil {
			return badRequest(c, "Invalid note ID")
		}

		if err := a.Notes.Restore(id); err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				return notFound(c, "Note not found or not deleted")
			}
			return serverError(c, "Failed to restore note", err)
		}

		a.Logger.Info("note restored", "id", id)

		return success(c, fiber.Map{
			"id":      id,
			"message": "Note restored successfully",
		})
	}
}

// SearchNotes returns active notes matching a substring query
func SearchNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))

		results, err := a.Notes.Search(query)
		if err != nil {
			if errors.Is(err, services.ErrEmptyQuery) {
				return badRequest(c, "Search query is required")
			}
			return serverError(c, "Failed to search notes", err)
		}

		return success(c, fiber.Map{
			"query":   query,
			"results": results,
			"count":   len(results),
		})
	}
}

// GetStats returns aggregate note counters
func GetStats(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := a.Notes.Stats()
		if err != nil {
			return serverError(c, "Failed to fetch stats", err)
		}

		return success(c, fiber.Map{
			"total_notes":   stats.Total,
			"active_notes":  stats.Active,
			"deleted_notes": stats.Deleted,
			"first_note_id": stats.FirstNoteID,
			"last_note_id":  stats.LastNoteID,
			"storage_type":  "MySQL",
			"database_host": a.Config.Database.Host,
		})
	}
}
