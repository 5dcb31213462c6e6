package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validation"
	"reviewhub/internal/mailer"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity carried by an access token. The role is a
// snapshot taken at mint time; later role changes do not revoke
// previously issued tokens.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

type AuthService interface {
	// Signup registers a new user and emails them a confirmation code.
	// When the exact (username, email) pair already exists this is a
	// resend: the returned token is non-empty and nothing is created
	// or emailed.
	Signup(ctx context.Context, username, email string) (*models.User, string, error)
	// ExchangeToken trades a (username, confirmation code) pair for a
	// bearer access token embedding the user's current role.
	ExchangeToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mail      mailer.Sender
	logger    *zap.Logger
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	mail mailer.Sender,
	logger *zap.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		mail:      mail,
		logger:    logger,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, string, error) {
	if err := validation.Username(username); err != nil {
		return nil, "", err
	}

	// Exact pair already registered: idempotent "give me a session"
	// path. No new code, no email, no second row.
	existing, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if err == nil {
		token, err := s.generateAccessToken(existing)
		if err != nil {
			return nil, "", err
		}
		return existing, token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	// Username or email held by a different user
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", apperr.FieldError("username", "username already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", apperr.FieldError("email", "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	code := uuid.New().String()
	user := &models.User{
		Username:         username,
		Email:            email,
		Role:             "user",
		ConfirmationCode: &code,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// two racing signups for the same name: exactly one wins
		if apperr.IsUniqueViolation(err) {
			return nil, "", apperr.FieldError("username", "username or email already in use")
		}
		return nil, "", err
	}

	// Best-effort delivery. The user row is already committed and a
	// mail failure must not roll it back.
	go func(to, name, code string) {
		if err := s.mail.SendConfirmationCode(to, name, code); err != nil {
			s.logger.Error("failed to send confirmation code",
				zap.String("username", name), zap.Error(err))
		}
	}(user.Email, user.Username, code)

	return user, "", nil
}

func (s *authService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}

	// Plain string equality. The code has no expiry and stays valid
	// until a new signup replaces it.
	if user.ConfirmationCode == nil || *user.ConfirmationCode != code {
		return "", apperr.FieldError("confirmation_code", "invalid confirmation code")
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
