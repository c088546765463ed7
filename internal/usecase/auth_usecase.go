package usecase

import (
	"context"
	"time"

	"catalog/internal/domain/entity"
)

// TokenTypeBearer is the token_type reported to OAuth2 clients.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput accepts either the username or the email as Login.
type LoginInput struct {
	Login    string
	Password string
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// TokenOutput returns the generated tokens after a successful login or refresh.
type TokenOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
}

// AuthUsecase defines account registration and token handling.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenOutput, error)
	// Authenticate resolves a bearer access token to an active user.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	ChangePassword(ctx context.Context, user *entity.User, input *ChangePasswordInput) error
}
