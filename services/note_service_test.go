package services

import (
	"errors"
	"testing"
	"time"

	"cloud-notes/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ==================== MOCKS ====================

// MockRepository is a mock implementation of NoteRepository interface
type MockRepository struct {
	mock.Mock
}

// Ensure MockRepository implements NoteRepository interface
var _ NoteRepository = (*MockRepository)(nil)

func (m *MockRepository) CreateNote(title, content string) (*models.Note, error) {
	args := m.Called(title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) GetNote(id int64) (*models.Note, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) ListActiveNotes() ([]models.Note, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockRepository) UpdateNoteFields(id int64, req models.UpdateNoteRequest) (bool, error) {
	args := m.Called(id, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SoftDeleteNote(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RestoreNote(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SearchNotes(query string) ([]models.Note, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockRepository) NoteStats() (*models.NoteStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NoteStats), args.Error(1)
}

func strptr(s string) *string { return &s }

// ==================== TESTS ====================

func TestNoteService_Create(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		title         string
		content       string
		mockSetup     func(*MockRepository)
		expectedNote  *models.Note
		expectedError error
	}{
		{
			name:    "Success - valid note",
			title:   "Groceries",
			content: "milk, eggs",
			mockSetup: func(repo *MockRepository) {
				repo.On("CreateNote", "Groceries", "milk, eggs").Return(&models.Note{
					ID:        1,
					Title:     "Groceries",
					Content:   "milk, eggs",
					CreatedAt: now,
					UpdatedAt: now,
				}, nil)
			},
			expectedNote: &models.Note{
				ID:        1,
				Title:     "Groceries",
				Content:   "milk, eggs",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name:    "Trims title and content before insert",
			title:   "  Groceries  ",
			content: "  milk  ",
			mockSetup: func(repo *MockRepository) {
				repo.On("CreateNote", "Groceries", "milk").Return(&models.Note{
					ID:    2,
					Title: "Groceries",
				}, nil)
			},
			expectedNote: &models.Note{ID: 2, Title: "Groceries"},
		},
		{
			name:          "Empty title fails",
			title:         "",
			content:       "body",
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrEmptyTitle,
		},
		{
			name:          "Whitespace-only title fails",
			title:         "   \t ",
			content:       "body",
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrEmptyTitle,
		},
		{
			name:    "Repository error propagates",
			title:   "Groceries",
			content: "",
			mockSetup: func(repo *MockRepository) {
				repo.On("CreateNote", "Groceries", "").Return(nil, errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.mockSetup(repo)

			service := NewNoteService(repo)
			note, err := service.Create(tt.title, tt.content)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedNote, note)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Get(t *testing.T) {
	tests := []struct {
		name          string
		id            int64
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name: "Success - active note",
			id:   1,
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Groceries"}, nil)
			},
		},
		{
			name: "Missing note",
			id:   99,
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(99)).Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Deleted note is invisible",
			id:   2,
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(2)).Return(&models.Note{ID: 2, Title: "Gone", IsDeleted: true}, nil)
			},
			expectedError: ErrNoteDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.mockSetup(repo)

			service := NewNoteService(repo)
			note, err := service.Get(tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, note)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Update(t *testing.T) {
	tests := []struct {
		name            string
		id              int64
		req             models.UpdateNoteRequest
		mockSetup       func(*MockRepository)
		expectedUpdated bool
		expectedError   error
	}{
		{
			name: "Success - title update",
			id:   1,
			req:  models.UpdateNoteRequest{Title: strptr("New title")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
				repo.On("UpdateNoteFields", int64(1), models.UpdateNoteRequest{Title: strptr("New title")}).
					Return(true, nil)
			},
			expectedUpdated: true,
		},
		{
			name: "Title is trimmed before write",
			id:   1,
			req:  models.UpdateNoteRequest{Title: strptr("  Padded  ")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
				repo.On("UpdateNoteFields", int64(1), models.UpdateNoteRequest{Title: strptr("Padded")}).
					Return(true, nil)
			},
			expectedUpdated: true,
		},
		{
			name: "Explicit empty content is a valid update",
			id:   1,
			req:  models.UpdateNoteRequest{Content: strptr("")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
				repo.On("UpdateNoteFields", int64(1), models.UpdateNoteRequest{Content: strptr("")}).
					Return(true, nil)
			},
			expectedUpdated: true,
		},
		{
			name: "Whitespace title rejected",
			id:   1,
			req:  models.UpdateNoteRequest{Title: strptr("   ")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
			},
			expectedError: ErrEmptyTitle,
		},
		{
			name: "Missing note",
			id:   99,
			req:  models.UpdateNoteRequest{Title: strptr("X")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(99)).Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Missing note outranks blank title",
			id:   99,
			req:  models.UpdateNoteRequest{Title: strptr("   ")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(99)).Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Deleted note outranks blank title",
			id:   2,
			req:  models.UpdateNoteRequest{Title: strptr("   ")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(2)).Return(&models.Note{ID: 2, IsDeleted: true}, nil)
			},
			expectedError: ErrNoteDeleted,
		},
		{
			name: "Deleted note cannot be updated",
			id:   2,
			req:  models.UpdateNoteRequest{Title: strptr("X")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(2)).Return(&models.Note{ID: 2, IsDeleted: true}, nil)
			},
			expectedError: ErrNoteDeleted,
		},
		{
			name: "No recognized fields is a no-op success",
			id:   1,
			req:  models.UpdateNoteRequest{},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
			},
			expectedUpdated: false,
		},
		{
			name: "Concurrent delete between check and write",
			id:   1,
			req:  models.UpdateNoteRequest{Title: strptr("X")},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", int64(1)).Return(&models.Note{ID: 1, Title: "Old"}, nil)
				repo.On("UpdateNoteFields", int64(1), models.UpdateNoteRequest{Title: strptr("X")}).
					Return(false, nil)
			},
			expectedError: ErrNoteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.mockSetup(repo)

			service := NewNoteService(repo)
			updated, err := service.Update(tt.id, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUpdated, updated)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_SoftDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SoftDeleteNote", int64(1)).Return(true, nil)

		err := NewNoteService(repo).SoftDelete(1)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing or already deleted", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SoftDeleteNote", int64(1)).Return(false, nil)

		err := NewNoteService(repo).SoftDelete(1)
		assert.ErrorIs(t, err, ErrNoteNotFound)
		repo.AssertExpectations(t)
	})
}

func TestNoteService_Restore(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RestoreNote", int64(1)).Return(true, nil)

		err := NewNoteService(repo).Restore(1)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Second restore in a row fails", func(t *testing.T) {
		// Restore requires the deletion flag to be set; once cleared,
		// the conditional update matches nothing.
		repo := new(MockRepository)
		repo.On("RestoreNote", int64(1)).Return(false, nil)

		err := NewNoteService(repo).Restore(1)
		assert.ErrorIs(t, err, ErrNoteNotFound)
		repo.AssertExpectations(t)
	})
}

func TestNoteService_Search(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		mockSetup     func(*MockRepository)
		expectedCount int
		expectedError error
	}{
		{
			name:  "Success - trims query",
			query: "  milk  ",
			mockSetup: func(repo *MockRepository) {
				repo.On("SearchNotes", "milk").Return([]models.Note{
					{ID: 1, Title: "Groceries", Content: "milk, eggs"},
				}, nil)
			},
			expectedCount: 1,
		},
		{
			name:          "Empty query fails",
			query:         "   ",
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrEmptyQuery,
		},
		{
			name:  "No matches returns empty slice",
			query: "nothing",
			mockSetup: func(repo *MockRepository) {
				repo.On("SearchNotes", "nothing").Return([]models.Note{}, nil)
			},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.mockSetup(repo)

			service := NewNoteService(repo)
			results, err := service.Search(tt.query)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Len(t, results, tt.expectedCount)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Stats(t *testing.T) {
	first, last := int64(1), int64(5)

	repo := new(MockRepository)
	repo.On("NoteStats").Return(&models.NoteStats{
		Total:       5,
		Active:      3,
		Deleted:     2,
		FirstNoteID: &first,
		LastNoteID:  &last,
	}, nil)

	stats, err := NewNoteService(repo).Stats()
	assert.NoError(t, err)
	assert.Equal(t, stats.Total, stats.Active+stats.Deleted)
	assert.Equal(t, int64(1), *stats.FirstNoteID)
	assert.Equal(t, int64(5), *stats.LastNoteID)
	repo.AssertExpectations(t)
}
