package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/permission"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func newCommentServiceForTest() (CommentService, *MockCommentRepository, *MockReviewRepository) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	return NewCommentService(commentRepo, reviewRepo), commentRepo, reviewRepo
}

func TestCommentCreate_Success(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1, AuthorID: "author-1"}, nil)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 42
		}).
		Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Comment{
			ID:       42,
			ReviewID: 7,
			AuthorID: "user-2",
			Text:     "agreed",
			Author:   models.User{ID: "user-2", Username: "bob"},
		}, nil)

	comment, err := svc.Create(context.Background(), 1, 7, "user-2", dto.CreateCommentRequest{Text: "agreed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), comment.ID)
	assert.Equal(t, "bob", comment.Author)
	commentRepo.AssertExpectations(t)
}

func TestCommentCreate_ReviewNotUnderTitle(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 99, AuthorID: "author-1"}, nil)

	_, err := svc.Create(context.Background(), 1, 7, "user-2", dto.CreateCommentRequest{Text: "agreed"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentCreate_ReviewMissing(t *testing.T) {
	svc, _, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 1, 404, "user-2", dto.CreateCommentRequest{Text: "hi"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentGetByID_ReviewMismatchReadsAsNotFound(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Comment{ID: 42, ReviewID: 8, AuthorID: "user-2"}, nil)

	_, err := svc.GetByID(context.Background(), 1, 7, 42)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentUpdate_StrangerDenied(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Comment{ID: 42, ReviewID: 7, AuthorID: "user-2"}, nil)

	_, err := svc.Update(context.Background(), 1, 7, 42, "stranger", permission.RoleUser,
		dto.UpdateCommentRequest{Text: "edited"})

	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentUpdate_AdminAllowed(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Comment{ID: 42, ReviewID: 7, AuthorID: "user-2", Text: "old",
			Author: models.User{ID: "user-2", Username: "bob"}}, nil)
	commentRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.Update(context.Background(), 1, 7, 42, "admin-1", permission.RoleAdmin,
		dto.UpdateCommentRequest{Text: "moderated"})

	assert.NoError(t, err)
	assert.Equal(t, "moderated", comment.Text)
	commentRepo.AssertExpectations(t)
}

func TestCommentDelete_AuthorAllowed(t *testing.T) {
	svc, commentRepo, reviewRepo := newCommentServiceForTest()

	reviewRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Comment{ID: 42, ReviewID: 7, AuthorID: "user-2"}, nil)
	commentRepo.On("Delete", mock.Anything, int64(42)).Return(nil)

	err := svc.Delete(context.Background(), 1, 7, 42, "user-2", permission.RoleUser)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
