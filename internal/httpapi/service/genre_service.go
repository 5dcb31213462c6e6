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

const genreCacheKey = "genres"

type GenreService interface {
	List(ctx context.Context, search string) ([]dto.GenreResponse, error)
	Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	cache     *cache.CatalogCache
}

func NewGenreService(genreRepo repository.GenreRepository, cache *cache.CatalogCache) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		cache:     cache,
	}
}

func (s *genreService) List(ctx context.Context, search string) ([]dto.GenreResponse, error) {
	if payload, ok := s.cache.Get(ctx, genreCacheKey, search); ok {
		var cached []dto.GenreResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	genres, err := s.genreRepo.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}

	if payload, err := json.Marshal(responses); err == nil {
		s.cache.Set(ctx, genreCacheKey, search, payload)
	}

	return responses, nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	genre := &models.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.FieldError("slug", "slug already in use")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, genreCacheKey)
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	s.cache.Invalidate(ctx, genreCacheKey)
	return nil
}
