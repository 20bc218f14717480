package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"media-journal/models"
	"media-journal/storage"
)

func TestNoteService_Create(t *testing.T) {
	media := &models.Media{ID: 1, Title: "Dune", MediaType: models.MediaTypeBook}
	summary := "a note about spice"

	tests := []struct {
		name          string
		input         models.NoteCreate
		mockSetup     func(*MockNoteRepository, *MockMediaRepository, *MockAIGateway)
		expectedError error
		checkResult   func(*testing.T, *models.Note)
	}{
		{
			name:  "Success - Note enriched with summary",
			input: models.NoteCreate{MediaID: 1, Content: "the spice must flow"},
			mockSetup: func(repo *MockNoteRepository, mediaRepo *MockMediaRepository, ai *MockAIGateway) {
				mediaRepo.On("Get", mock.Anything, int64(1)).Return(media, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(
					&models.Note{ID: 10, MediaID: 1, Content: "the spice must flow"}, nil)
				ai.On("Summarize", mock.Anything, "the spice must flow").Return(summary, nil)
				repo.On("UpdateAISummary", mock.Anything, int64(10), summary).Return(
					&models.Note{ID: 10, MediaID: 1, Content: "the spice must flow", AISummary: &summary}, nil)
			},
			checkResult: func(t *testing.T, n *models.Note) {
				assert.NotNil(t, n.AISummary)
				assert.Equal(t, summary, *n.AISummary)
			},
		},
		{
			name:  "Success - Summarizer failure leaves note without summary",
			input: models.NoteCreate{MediaID: 1, Content: "the spice must flow"},
			mockSetup: func(repo *MockNoteRepository, mediaRepo *MockMediaRepository, ai *MockAIGateway) {
				mediaRepo.On("Get", mock.Anything, int64(1)).Return(media, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(
					&models.Note{ID: 11, MediaID: 1, Content: "the spice must flow"}, nil)
				ai.On("Summarize", mock.Anything, "the spice must flow").Return("", errors.New("model unavailable"))
			},
			checkResult: func(t *testing.T, n *models.Note) {
				assert.Nil(t, n.AISummary, "enrichment is best-effort")
			},
		},
		{
			name:  "Success - Empty content skips enrichment entirely",
			input: models.NoteCreate{MediaID: 1, Content: ""},
			mockSetup: func(repo *MockNoteRepository, mediaRepo *MockMediaRepository, ai *MockAIGateway) {
				mediaRepo.On("Get", mock.Anything, int64(1)).Return(media, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(
					&models.Note{ID: 12, MediaID: 1}, nil)
			},
			checkResult: func(t *testing.T, n *models.Note) {
				assert.Nil(t, n.AISummary)
			},
		},
		{
			name:  "Error - Unknown media writes nothing",
			input: models.NoteCreate{MediaID: 404, Content: "orphan"},
			mockSetup: func(repo *MockNoteRepository, mediaRepo *MockMediaRepository, ai *MockAIGateway) {
				mediaRepo.On("Get", mock.Anything, int64(404)).Return(nil, storage.ErrNotFound)
			},
			expectedError: ErrMediaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			mockMedia := new(MockMediaRepository)
			mockAI := new(MockAIGateway)
			tt.mockSetup(mockRepo, mockMedia, mockAI)

			service := NewNoteService(mockRepo, mockMedia, mockAI, testLogger())
			note, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				tt.checkResult(t, note)
			}
			mockRepo.AssertExpectations(t)
			mockMedia.AssertExpectations(t)
			mockAI.AssertExpectations(t)
		})
	}
}

func TestNoteService_Update(t *testing.T) {
	t.Run("Content change regenerates summary", func(t *testing.T) {
		content := "revised thoughts"
		summary := "a revised summary"

		mockRepo := new(MockNoteRepository)
		mockAI := new(MockAIGateway)
		mockRepo.On("Update", mock.Anything, int64(10), mock.Anything).Return(
			&models.Note{ID: 10, MediaID: 1, Content: content}, nil)
		mockAI.On("Summarize", mock.Anything, content).Return(summary, nil)
		mockRepo.On("UpdateAISummary", mock.Anything, int64(10), summary).Return(
			&models.Note{ID: 10, MediaID: 1, Content: content, AISummary: &summary}, nil)

		service := NewNoteService(mockRepo, new(MockMediaRepository), mockAI, testLogger())
		note, err := service.Update(context.Background(), 10, models.NoteUpdate{Content: &content})

		assert.NoError(t, err)
		assert.Equal(t, summary, *note.AISummary)
		mockRepo.AssertExpectations(t)
		mockAI.AssertExpectations(t)
	})

	t.Run("Summary write failure returns the updated note", func(t *testing.T) {
		content := "revised thoughts"

		mockRepo := new(MockNoteRepository)
		mockAI := new(MockAIGateway)
		mockRepo.On("Update", mock.Anything, int64(10), mock.Anything).Return(
			&models.Note{ID: 10, MediaID: 1, Content: content}, nil)
		mockAI.On("Summarize", mock.Anything, content).Return("a summary", nil)
		mockRepo.On("UpdateAISummary", mock.Anything, int64(10), "a summary").Return(nil, errors.New("write failed"))

		service := NewNoteService(mockRepo, new(MockMediaRepository), mockAI, testLogger())
		note, err := service.Update(context.Background(), 10, models.NoteUpdate{Content: &content})

		assert.NoError(t, err)
		assert.Equal(t, content, note.Content)
		assert.Nil(t, note.AISummary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found maps to service error", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("Update", mock.Anything, int64(404), mock.Anything).Return(nil, storage.ErrNotFound)

		service := NewNoteService(mockRepo, new(MockMediaRepository), new(MockAIGateway), testLogger())
		_, err := service.Update(context.Background(), 404, models.NoteUpdate{})

		assert.ErrorIs(t, err, ErrNoteNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestNoteService_List(t *testing.T) {
	t.Run("Media filter routes to GetByMediaID", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("GetByMediaID", mock.Anything, int64(7), 0, 50).Return([]*models.Note{}, nil)

		service := NewNoteService(mockRepo, new(MockMediaRepository), new(MockAIGateway), testLogger())
		_, err := service.List(context.Background(), 0, 50, 7)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No filter pages everything", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("GetMulti", mock.Anything, 0, 100, map[string]any(nil)).Return([]*models.Note{}, nil)

		service := NewNoteService(mockRepo, new(MockMediaRepository), new(MockAIGateway), testLogger())
		_, err := service.List(context.Background(), 0, 0, 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestNoteService_Delete(t *testing.T) {
	mockRepo := new(MockNoteRepository)
	mockRepo.On("Delete", mock.Anything, int64(10)).Return(true, nil)
	mockRepo.On("Delete", mock.Anything, int64(404)).Return(false, nil)

	service := NewNoteService(mockRepo, new(MockMediaRepository), new(MockAIGateway), testLogger())
	assert.NoError(t, service.Delete(context.Background(), 10))
	assert.ErrorIs(t, service.Delete(context.Background(), 404), ErrNoteNotFound)
	mockRepo.AssertExpectations(t)
}
