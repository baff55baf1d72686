package handlers

import (
	"database/sql/driver"
	"errors"
	"log/slog"
	"net"

	"cloud-notes/models"

	"github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

// serverError logs the underlying error with the request ID and returns a
// generic message to the caller. Connection failures get their own message;
// raw driver error text never reaches the response.
func serverError(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	if isConnectionError(err) {
		message = "Database connection failed"
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn)
}

// noteFields flattens a note into a response map. is_deleted is never
// exposed; timestamps serialize as RFC 3339 via time.Time.
func noteFields(note *models.Note) fiber.Map {
	return fiber.Map{
		"id":         note.ID,
		"title":      note.Title,
		"content":    note.Content,
		"created_at": note.CreatedAt,
		"updated_at": note.UpdatedAt,
	}
}

// parseNoteID extracts the numeric id path parameter. Zero parses fine and
// simply matches no row downstream; only non-numeric and negative values
// are rejected here.
func parseNoteID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return 0, errors.New("invalid note ID")
	}
	return int64(id), nil
}
