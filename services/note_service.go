package services

import (
	"strings"

	"cloud-notes/models"
)

// NoteService handles business logic for notes: input normalization, the
// non-empty-title invariant, and the soft-delete state rules. The repository
// underneath is pure SQL.
type NoteService struct {
	repo NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create trims both fields and inserts a new active note. The returned note
// carries the server-assigned id and timestamps.
func (ns *NoteService) Create(title, content string) (*models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	return ns.repo.CreateNote(title, strings.TrimSpace(content))
}

// Get returns an active note by id. Deleted notes are invisible to direct
// reads; ErrNoteDeleted lets the caller log the distinction while keeping
// the API contract a plain not-found.
func (ns *NoteService) Get(id int64) (*models.Note, error) {
	note, err := ns.repo.GetNote(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if note.IsDeleted {
		return nil, ErrNoteDeleted
	}

	return note, nil
}

// ListActive returns all non-deleted notes, newest first.
func (ns *NoteService) ListActive() ([]models.Note, error) {
	return ns.repo.ListActiveNotes()
}

// Update applies a partial update to an active note. It reports whether
// anything was written: a request naming no recognized fields is a
// successful no-op, not an error. Existence and deletion state resolve
// before field validation, so a blank title on a missing note is a
// not-found, not a validation failure.
func (ns *NoteService) Update(id int64, req models.UpdateNoteRequest) (bool, error) {
	note, err := ns.repo.GetNote(id)
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, ErrNoteNotFound
	}
	if note.IsDeleted {
		return false, ErrNoteDeleted
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return false, ErrEmptyTitle
		}
		req.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		req.Content = &content
	}

	if req.Empty() {
		return false, nil
	}

	updated, err := ns.repo.UpdateNoteFields(id, req)
	if err != nil {
		return false, err
	}
	if !updated {
		// The note was soft-deleted between the state check and the
		// conditional write; the write matched zero rows.
		return false, ErrNoteNotFound
	}

	return true, nil
}

// SoftDelete flags a note as deleted. A missing note and an already-deleted
// note are indistinguishable here: both match zero rows.
func (ns *NoteService) SoftDelete(id int64) error {
	deleted, err := ns.repo.SoftDeleteNote(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

// Restore clears the deletion flag. Fails with ErrNoteNotFound when the note
// does not exist or is not currently deleted, so a second restore in a row
// is an error rather than an idempotent success.
func (ns *NoteService) Restore(id int64) error {
	restored, err := ns.repo.RestoreNote(id)
	if err != nil {
		return err
	}
	if !restored {
		return ErrNoteNotFound
	}
	return nil
}

// Search returns active notes containing the trimmed query as a substring
// in title or content.
func (ns *NoteService) Search(query string) ([]models.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	return ns.repo.SearchNotes(query)
}

// Stats returns table-wide counters.
func (ns *NoteService) Stats() (*models.NoteStats, error) {
	return ns.repo.NoteStats()
}
