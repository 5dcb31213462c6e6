package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// CreateReviewRequest for posting a review. Score is validated before
// anything reaches storage.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required,min=1,max=200"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewRequest: partial update of the author's review
type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,min=1,max=200"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		Author:  review.Author.Username,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
