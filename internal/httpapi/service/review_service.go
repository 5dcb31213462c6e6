package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/permission"
	"reviewhub/internal/httpapi/repository"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, actorID string, actorRole permission.Role, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, actorID string, actorRole permission.Role) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPaginatedResponse(responses, int(total), page, pageSize), nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	// Score is bound-checked at the request boundary too; guard here
	// so nothing out of range ever reaches storage.
	if req.Score < 1 || req.Score > 10 {
		return nil, apperr.FieldError("score", "score must be between 1 and 10")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// The composite unique index turns a duplicate (even a
		// concurrent one) into a user-facing validation failure.
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.FieldError("review", "you have already reviewed this title")
		}
		return nil, err
	}

	// Reload with author data
	review, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actorID string, actorRole permission.Role, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permission.CanModifyContent(actorRole, review.AuthorID == actorID) {
		return nil, apperr.ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// Delete removes a review and cascades to its comments.
func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actorID string, actorRole permission.Role) error {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !permission.CanModifyContent(actorRole, review.AuthorID == actorID) {
		return apperr.ErrPermissionDenied
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

// getForTitle loads a review and checks it belongs to the routed
// title; a mismatch reads as not found.
func (s *reviewService) getForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, apperr.ErrNotFound
	}
	return review, nil
}
