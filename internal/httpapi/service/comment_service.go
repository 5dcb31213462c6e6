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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedResponse[dto.CommentResponse], error)
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, actorID string, actorRole permission.Role, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, actorID string, actorRole permission.Role) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.PaginatedResponse[dto.CommentResponse], error) {
	if _, err := s.reviewForTitle(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedResponse(responses, int(total), page, pageSize), nil
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Create posts a comment on a review. No uniqueness constraint here:
// an author may comment on the same review any number of times.
func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.reviewForTitle(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, actorID string, actorRole permission.Role, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permission.CanModifyContent(actorRole, comment.AuthorID == actorID) {
		return nil, apperr.ErrPermissionDenied
	}

	comment.Text = req.Text
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, actorID string, actorRole permission.Role) error {
	comment, err := s.getForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permission.CanModifyContent(actorRole, comment.AuthorID == actorID) {
		return apperr.ErrPermissionDenied
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) reviewForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
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

func (s *commentService) getForReview(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.reviewForTitle(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, apperr.ErrNotFound
	}
	return comment, nil
}
