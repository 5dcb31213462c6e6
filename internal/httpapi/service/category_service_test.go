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
)

// The nil cache is the cache-disabled mode; every call falls through
// to the repository.

func TestCategoryList(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo, nil)

	categoryRepo.On("GetAll", mock.Anything, "").
		Return([]models.Category{
			{ID: 1, Name: "Books", Slug: "books"},
			{ID: 2, Name: "Movies", Slug: "movies"},
		}, nil)

	categories, err := svc.List(context.Background(), "")

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "books", categories[0].Slug)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo, nil)

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Books", Slug: "books"})

	ve, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "slug")
}

func TestCategoryDelete_NotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo, nil)

	categoryRepo.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGenreCreate_Success(t *testing.T) {
	genreRepo := new(MockGenreRepository)
	svc := NewGenreService(genreRepo, nil)

	genreRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).Return(nil)

	genre, err := svc.Create(context.Background(), dto.CreateGenreRequest{Name: "Sci-Fi", Slug: "sci-fi"})

	assert.NoError(t, err)
	assert.Equal(t, "sci-fi", genre.Slug)
	genreRepo.AssertExpectations(t)
}
