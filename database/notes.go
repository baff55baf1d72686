package database

import (
	"database/sql"
	"strings"

	"cloud-notes/models"
)

const noteColumns = "id, title, content, created_at, updated_at, is_deleted"

func scanNote(row *sql.Row) (*models.Note, error) {
	var note models.Note
	var content sql.NullString

	err := row.Scan(
		&note.ID, &note.Title, &content,
		&note.CreatedAt, &note.UpdatedAt, &note.IsDeleted,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	note.Content = content.String
	return &note, nil
}

// CreateNote inserts a new active note and re-reads the full row so the
// caller sees the server-assigned id and timestamps.
func (r *Repository) CreateNote(title, content string) (*models.Note, error) {
	res, err := r.db.Exec(`
		INSERT INTO notes (title, content)
		VALUES (?, ?)
	`, title, content)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetNote(id)
}

// GetNote fetches a note by id regardless of its deletion state, or nil if
// no such row exists. Visibility of deleted notes is the service's call.
func (r *Repository) GetNote(id int64) (*models.Note, error) {
	row := r.db.QueryRow(`
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = ?
	`, id)
	return scanNote(row)
}

// ListActiveNotes returns all non-deleted notes, newest first. Ties on
// created_at fall back to id so the ordering is deterministic.
func (r *Repository) ListActiveNotes() ([]models.Note, error) {
	rows, err := r.db.Query(`
		SELECT ` + noteColumns + `
		FROM notes
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

// UpdateNoteFields applies the supplied fields to an active note and reports
// whether a row was written. The is_deleted condition makes the write atomic
// against a concurrent soft-delete: a note deleted after the service's state
// check simply matches zero rows here.
func (r *Repository) UpdateNoteFields(id int64, req models.UpdateNoteRequest) (bool, error) {
	var sets []string
	var args []interface{}

	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *req.Content)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, id)
	res, err := r.db.Exec(`
		UPDATE notes
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = ? AND is_deleted = FALSE
	`, args...)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// SoftDeleteNote flags an active note as deleted. Pinning updated_at keeps
// the ON UPDATE refresh from firing; flag flips must not count as edits.
// Returns false when the note does not exist or is already deleted.
func (r *Repository) SoftDeleteNote(id int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE notes
		SET is_deleted = TRUE, updated_at = updated_at
		WHERE id = ? AND is_deleted = FALSE
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// RestoreNote clears the deletion flag on a soft-deleted note. Returns false
// when the note does not exist or is not currently deleted.
func (r *Repository) RestoreNote(id int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE notes
		SET is_deleted = FALSE, updated_at = updated_at
		WHERE id = ? AND is_deleted = TRUE
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// SearchNotes returns active notes whose title or content contains the query
// as a substring, newest first. Case sensitivity follows the table collation.
func (r *Repository) SearchNotes(query string) ([]models.Note, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(`
		SELECT ` + noteColumns + `
		FROM notes
		WHERE is_deleted = FALSE
		AND (title LIKE ? OR content LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

// NoteStats aggregates table-wide counters in a single statement. Min and
// max id come back as NULL on an empty table.
func (r *Repository) NoteStats() (*models.NoteStats, error) {
	var stats models.NoteStats
	var minID, maxID sql.NullInt64

	err := r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_deleted = FALSE), 0), MIN(id), MAX(id)
		FROM notes
	`).Scan(&stats.Total, &stats.Active, &minID, &maxID)
	if err != nil {
		return nil, err
	}

	stats.Deleted = stats.Total - stats.Active
	if minID.Valid {
		stats.FirstNoteID = &minID.Int64
	}
	if maxID.Valid {
		stats.LastNoteID = &maxID.Int64
	}

	return &stats, nil
}

func collectNotes(rows *sql.Rows) ([]models.Note, error) {
	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		var content sql.NullString
		if err := rows.Scan(
			&note.ID, &note.Title, &content,
			&note.CreatedAt, &note.UpdatedAt, &note.IsDeleted,
		); err != nil {
			return nil, err
		}
		note.Content = content.String
		notes = append(notes, note)
	}

	return notes, rows.Err()
}
