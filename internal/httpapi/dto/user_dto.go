package dto

import "reviewhub/internal/httpapi/models"

// UserResponse for returning user information
type UserResponse struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Bio      *string `json:"bio,omitempty"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Bio:      user.Bio,
	}
}

// CreateUserRequest: admin-side user creation, role may be set
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,max=150,username"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Role     string  `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Bio      *string `json:"bio"`
}

// UpdateUserRequest: partial update, nil fields are left untouched.
// On /users/me the role field is accepted but ignored.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,max=150,username"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Role     *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Bio      *string `json:"bio"`
}
