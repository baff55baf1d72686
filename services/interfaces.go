package services

import "cloud-notes/models"

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	CreateNote(title, content string) (*models.Note, error)
	GetNote(id int64) (*models.Note, error)
	ListActiveNotes() ([]models.Note, error)
	UpdateNoteFields(id int64, req models.UpdateNoteRequest) (bool, error)
	SoftDeleteNote(id int64) (bool, error)
	RestoreNote(id int64) (bool, error)
	SearchNotes(query string) ([]models.Note, error)
	NoteStats() (*models.NoteStats, error)
}
