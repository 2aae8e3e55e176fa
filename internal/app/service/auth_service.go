package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"
	"unicode"

	"community_hub/internal/common"
	"community_hub/internal/common/security"
	"community_hub/internal/domain/model"
	"community_hub/internal/domain/repository"

	"github.com/google/uuid"
)

// dummyHash is a valid bcrypt hash compared against when login hits an
// unknown email, so that path costs the same as a real password miss.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.Tokens
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.Tokens) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Session is the outcome of register/login/refresh. The handler returns the
// access token in the body and delivers the refresh token only as an
// HTTP-only cookie.
type Session struct {
	User             *model.User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn a bcrypt compare anyway; the uniform error must not be
			// distinguishable by timing either.
			security.VerifyPassword(req.Password, dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := security.VerifyPassword(req.Password, user.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Refresh validates a refresh token and issues a new token pair. The new
// refresh token keeps the original expiry: rotating on every use must not
// extend a session past the ceiling set at login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		// Expired, tampered and malformed all collapse to one response;
		// the cause stays in the server log.
		log.Printf("refresh token rejected: %v", err)
		return nil, common.ErrUnauthorized
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	rotated, err := s.tokens.ReissueRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &Session{
		AccessToken:      accessToken,
		RefreshToken:     rotated,
		RefreshExpiresAt: claims.ExpiresAt,
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := security.VerifyPassword(req.CurrentPassword, user.HashedPassword)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return common.ErrInvalidCredentials
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.HashedPassword)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return common.ErrInvalidCredentials
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *AuthService) issueSession(user *model.User) (*Session, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	user.HashedPassword = "" // Clear hash before returning
	return &Session{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func validateRegistration(req RegisterRequest) error {
	if len(req.Name) < 2 || len(req.Name) > 50 {
		return common.Errorf("name must be between 2 and 50 characters: %w", common.ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return common.Errorf("invalid email address: %w", common.ErrValidation)
	}
	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return common.Errorf("password must be at least 8 characters: %w", common.ErrValidation)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return common.Errorf("password must contain upper, lower, digit and special characters: %w", common.ErrValidation)
	}
	return nil
}
