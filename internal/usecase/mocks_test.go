package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bryokn/ClassiConnect/internal/entity"
	"github.com/bryokn/ClassiConnect/internal/port/repository"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}
func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}
func (m *MockListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}
func (m *MockListingRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingRepository) IncrementImpressions(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingRepository) AddImageURL(ctx context.Context, id, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, c *entity.Category) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}
func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}
func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}
func (m *MockCategoryRepository) CreateSubcategory(ctx context.Context, s *entity.Subcategory) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}
func (m *MockCategoryRepository) GetSubcategoryByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subcategory), args.Error(1)
}
func (m *MockCategoryRepository) ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subcategory), args.Error(1)
}
func (m *MockCategoryRepository) CreateSpecialization(ctx context.Context, s *entity.Specialization) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}
func (m *MockCategoryRepository) GetSpecializationByID(ctx context.Context, id string) (*entity.Specialization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Specialization), args.Error(1)
}
func (m *MockCategoryRepository) ListSpecializations(ctx context.Context) ([]*entity.Specialization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Specialization), args.Error(1)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) (string, error) {
	args := m.Called(ctx, comment)
	return args.String(0), args.Error(1)
}
func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}
func (m *MockCommentRepository) GetByListingID(ctx context.Context, listingID string) ([]*entity.Comment, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}
func (m *MockCommentRepository) React(ctx context.Context, id string, reaction repository.CommentReaction) (*entity.Comment, error) {
	args := m.Called(ctx, id, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

type MockInteractionRepository struct{ mock.Mock }

func (m *MockInteractionRepository) UpsertAvailability(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	args := m.Called(ctx, listingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interaction), args.Error(1)
}
func (m *MockInteractionRepository) CreateReport(ctx context.Context, listingID, userID, content string) (*entity.Interaction, error) {
	args := m.Called(ctx, listingID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interaction), args.Error(1)
}
func (m *MockInteractionRepository) CreateCallback(ctx context.Context, listingID, userID string) (*entity.Interaction, error) {
	args := m.Called(ctx, listingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interaction), args.Error(1)
}
func (m *MockInteractionRepository) CompleteCallback(ctx context.Context, listingID, userID string) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}
func (m *MockInteractionRepository) FindActive(ctx context.Context, kind entity.InteractionKind, listingID, userID string) (*entity.Interaction, error) {
	args := m.Called(ctx, kind, listingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interaction), args.Error(1)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Create(ctx context.Context, msg *entity.ChatMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
func (m *MockChatRepository) GetByListingForUser(ctx context.Context, listingID, userID string) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, listingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChatMessage), args.Error(1)
}
func (m *MockChatRepository) MarkReceivedRead(ctx context.Context, listingID, userID string) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishListingCreated(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishListingReported(ctx context.Context, report *entity.Interaction) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendEmail(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
