package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/service"
	"reviewhub/internal/httpapi/validation"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*models.User, string, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// request DTOs use the custom username/slug binding tags
	validation.RegisterBindingValidators()
	return gin.New()
}

func TestSignup_NewUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	user := &models.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
	}
	mockAuthService.On("Signup", mock.Anything, "alice", "alice@example.com").Return(user, "", nil)

	reqBody := dto.SignupRequest{Username: "alice", Email: "alice@example.com"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
	assert.Equal(t, "alice@example.com", response["email"])

	mockAuthService.AssertExpectations(t)
}

func TestSignup_ResendReturnsToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	user := &models.User{ID: "user-123", Username: "alice", Email: "alice@example.com"}
	mockAuthService.On("Signup", mock.Anything, "alice", "alice@example.com").
		Return(user, "fresh-token", nil)

	reqBody := dto.SignupRequest{Username: "alice", Email: "alice@example.com"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fresh-token", response.Token)

	mockAuthService.AssertExpectations(t)
}

func TestSignup_ValidationErrorsAsFieldMap(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	mockAuthService.On("Signup", mock.Anything, "taken", "taken@example.com").
		Return(nil, "", apperr.FieldError("username", "username already in use"))

	reqBody := dto.SignupRequest{Username: "taken", Email: "taken@example.com"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "username already in use", response["errors"]["username"])
}

func TestSignup_InvalidJSON(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("ExchangeToken", mock.Anything, "alice", "the-code").
		Return("access-token", nil)

	reqBody := dto.TokenRequest{Username: "alice", ConfirmationCode: "the-code"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.Token)

	mockAuthService.AssertExpectations(t)
}

func TestToken_UnknownUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("ExchangeToken", mock.Anything, "ghost", "any").
		Return("", apperr.ErrNotFound)

	reqBody := dto.TokenRequest{Username: "ghost", ConfirmationCode: "any"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestToken_WrongCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("ExchangeToken", mock.Anything, "alice", "wrong").
		Return("", apperr.FieldError("confirmation_code", "invalid confirmation code"))

	reqBody := dto.TokenRequest{Username: "alice", ConfirmationCode: "wrong"}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}
