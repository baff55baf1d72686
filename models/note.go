package models

import "time"

// Note is the single persisted entity. IsDeleted is internal bookkeeping
// for the soft-delete lifecycle and is never exposed in API responses.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"-"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content"`
}

// UpdateNoteRequest carries a partial update. Pointer fields distinguish
// "absent" from "present with a value" (including an explicit empty string,
// which is valid for content and a validation error for title).
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Empty reports whether the request names no updatable field at all.
func (r UpdateNoteRequest) Empty() bool {
	return r.Title == nil && r.Content == nil
}

// NoteStats aggregates table-wide counters. FirstNoteID and LastNoteID are
// nil when the table is empty.
type NoteStats struct {
	Total       int64  `json:"total_notes"`
	Active      int64  `json:"active_notes"`
	Deleted     int64  `json:"deleted_notes"`
	FirstNoteID *int64 `json:"first_note_id"`
	LastNoteID  *int64 `json:"last_note_id"`
}
