package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/cache"
	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

const categoryCacheKey = "categories"

type CategoryService interface {
	List(ctx context.Context, search string) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.CatalogCache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cache *cache.CatalogCache) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *categoryService) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	if payload, ok := s.cache.Get(ctx, categoryCacheKey, search); ok {
		var cached []dto.CategoryResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}

	if payload, err := json.Marshal(responses); err == nil {
		s.cache.Set(ctx, categoryCacheKey, search, payload)
	}

	return responses, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.FieldError("slug", "slug already in use")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, categoryCacheKey)
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	s.cache.Invalidate(ctx, categoryCacheKey)
	return nil
}
