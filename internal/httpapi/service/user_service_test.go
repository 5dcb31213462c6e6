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

func strPtr(s string) *string { return &s }

func TestUserCreate_DefaultRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserCreate_ReservedUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	_, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserCreate_DuplicateTranslated(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(gorm.ErrDuplicatedKey)

	_, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	ve, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "username")
}

func TestUserUpdate_AdminCanChangeRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: "user"}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := userService.Update(context.Background(), "alice", dto.UpdateUserRequest{
		Role: strPtr("moderator"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "moderator", updated.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserUpdateSelf_RoleChangeIgnored(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: "user"}
	mockUserRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	// The role field is silently dropped, the rest of the patch applies
	updated, err := userService.UpdateSelf(context.Background(), "user-1", dto.UpdateUserRequest{
		Role: strPtr("admin"),
		Bio:  strPtr("hello"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", updated.Role)
	assert.Equal(t, "hello", *updated.Bio)
	mockUserRepo.AssertExpectations(t)
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := userService.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserDelete_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("DeleteByUsername", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := userService.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserList_Pagination(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	users := []models.User{
		{Username: "alice", Email: "alice@example.com", Role: "user"},
		{Username: "bob", Email: "bob@example.com", Role: "moderator"},
	}
	mockUserRepo.On("List", mock.Anything, "", 1, 20).Return(users, int64(42), nil)

	page, err := userService.List(context.Background(), "", 1, 20)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 1, page.Page)
	mockUserRepo.AssertExpectations(t)
}
