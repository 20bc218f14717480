package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"media-journal/models"
	"media-journal/storage"
)

// ==================== MOCKS ====================

// MockMediaRepository is a mock implementation of MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

// Ensure MockMediaRepository implements MediaRepository interface
var _ MediaRepository = (*MockMediaRepository)(nil)

func (m *MockMediaRepository) Create(ctx context.Context, rec storage.Record) (*models.Media, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Get(ctx context.Context, id int64) (*models.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.Media, error) {
	args := m.Called(ctx, skip, limit, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Media), args.Error(1)
}

func (m *MockMediaRepository) GetByMediaType(ctx context.Context, mediaType models.MediaType, skip, limit int) ([]*models.Media, error) {
	args := m.Called(ctx, mediaType, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Media), args.Error(1)
}

func (m *MockMediaRepository) GetByTitle(ctx context.Context, title string) (*models.Media, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Update(ctx context.Context, id int64, changes storage.Record) (*models.Media, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaRepository) AddGenre(ctx context.Context, mediaID int64, name string) error {
	args := m.Called(ctx, mediaID, name)
	return args.Error(0)
}

func (m *MockMediaRepository) GenresFor(ctx context.Context, mediaID int64) ([]string, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockNoteRepository is a mock implementation of NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

var _ NoteRepository = (*MockNoteRepository)(nil)

func (m *MockNoteRepository) Create(ctx context.Context, rec storage.Record) (*models.Note, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.Note, error) {
	args := m.Called(ctx, skip, limit, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteRepository) GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.Note, error) {
	args := m.Called(ctx, mediaID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, id int64, changes storage.Record) (*models.Note, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) UpdateAISummary(ctx context.Context, noteID int64, summary string) (*models.Note, error) {
	args := m.Called(ctx, noteID, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDiveRepository is a mock implementation of DiveRepository interface
type MockDiveRepository struct {
	mock.Mock
}

var _ DiveRepository = (*MockDiveRepository)(nil)

func (m *MockDiveRepository) Get(ctx context.Context, id int64) (*models.DeepDiveSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeepDiveSession), args.Error(1)
}

func (m *MockDiveRepository) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.DeepDiveSession, error) {
	args := m.Called(ctx, skip, limit, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeepDiveSession), args.Error(1)
}

func (m *MockDiveRepository) GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.DeepDiveSession, error) {
	args := m.Called(ctx, mediaID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeepDiveSession), args.Error(1)
}

func (m *MockDiveRepository) CreateWithRelatedWorks(ctx context.Context, in models.DeepDiveCreate, answer string, works []models.RelatedWorkInput) (*models.DeepDiveSession, error) {
	args := m.Called(ctx, in, answer, works)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeepDiveSession), args.Error(1)
}

func (m *MockDiveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAIGateway is a mock implementation of AIGateway interface
type MockAIGateway struct {
	mock.Mock
}

var _ AIGateway = (*MockAIGateway)(nil)

func (m *MockAIGateway) Summarize(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockAIGateway) DeepDive(ctx context.Context, question string, media *models.Media, notes []*models.Note) (string, []models.RelatedWorkInput, error) {
	args := m.Called(ctx, question, media, notes)
	var works []models.RelatedWorkInput
	if args.Get(1) != nil {
		works = args.Get(1).([]models.RelatedWorkInput)
	}
	return args.String(0), works, args.Error(2)
}
