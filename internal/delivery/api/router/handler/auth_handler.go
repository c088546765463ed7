package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catalog/internal/delivery/api/response"
	"catalog/internal/delivery/api/validator"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC    usecase.AuthUsecase
	Generator service.PasswordGenerator
	Logger    *slog.Logger
}

// AuthHandler handles account registration, tokens and password tooling.
type AuthHandler struct {
	authUC    usecase.AuthUsecase
	generator service.PasswordGenerator
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:    params.AuthUC,
		generator: params.Generator,
		logger:    params.Logger,
	}
}

// UserResponse is the public view of an account. The password hash is never rendered.
type UserResponse struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login"`
}

func newUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  optional(u.FirstName),
		LastName:   optional(u.LastName),
		Role:       u.Role.String(),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		LastLogin:  u.LastLogin,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// TokenResponse follows the OAuth2 token response shape.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func newTokenResponse(out *usecase.TokenOutput) TokenResponse {
	return TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
		ExpiresIn:    int64(out.ExpiresIn / time.Second),
	}
}

// StrengthResponse reports a password strength score.
type StrengthResponse struct {
	Strength string   `json:"strength"`
	Score    int      `json:"score"`
	MaxScore int      `json:"max_score"`
	Length   int      `json:"length"`
	Feedback []string `json:"feedback"`
}

func newStrengthResponse(s entity.PasswordStrength) StrengthResponse {
	feedback := s.Feedback
	if feedback == nil {
		feedback = []string{}
	}

	return StrengthResponse{
		Strength: s.Strength,
		Score:    s.Score,
		MaxScore: s.MaxScore,
		Length:   s.Length,
		Feedback: feedback,
	}
}

// RegisterRequest represents the request body for registering an account
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// LoginRequest accepts an OAuth2 password form or the same fields as JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshRequest carries the refresh token in the body or the query string.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" query:"refresh_token" validate:"required"`
}

// ChangePasswordRequest represents the request body for rotating a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// GeneratePasswordQuery represents the options of the password generator
type GeneratePasswordQuery struct {
	Length         int  `query:"length" validate:"gte=6,lte=72"`
	UseUppercase   bool `query:"use_uppercase"`
	UseDigits      bool `query:"use_digits"`
	UseSpecial     bool `query:"use_special"`
	AvoidAmbiguous bool `query:"avoid_ambiguous"`
	Strong         bool `query:"strong"`
}

// GeneratePassphraseQuery represents the options of the passphrase generator
type GeneratePassphraseQuery struct {
	WordCount int    `query:"word_count" validate:"gte=3,lte=8"`
	Separator string `query:"separator" validate:"max=5"`
}

// CheckStrengthRequest represents the request body of a strength check
type CheckStrengthRequest struct {
	Password string `json:"password" validate:"required"`
}

// Register handles account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("User registered",
		slog.Int64("user_id", user.ID), slog.String("role", user.Role.String()))

	return response.Created(newUserResponse(user), "User registered successfully").Send(c)
}

// Login exchanges credentials for an access and refresh token pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tokens, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Login:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Reply{Status: http.StatusOK, Body: newTokenResponse(tokens)}.Send(c)
}

// Refresh issues a new token pair from a refresh token
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := binder.BindQueryParams(c, &req); err != nil {
		return validator.FromBindError(validator.LocationQuery, err)
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tokens, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return response.Reply{Status: http.StatusOK, Body: newTokenResponse(tokens)}.Send(c)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.OK(newUserResponse(user), response.MessageSuccess).Send(c)
}

// ChangePassword rotates the authenticated user's password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.authUC.ChangePassword(c.Request().Context(), user, &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return err
	}

	return response.OK(nil, "Password changed successfully").Send(c)
}

// GeneratePassword returns a random password and its strength
func (h *AuthHandler) GeneratePassword(c echo.Context) error {
	query := GeneratePasswordQuery{
		Length:       16,
		UseUppercase: true,
		UseDigits:    true,
		UseSpecial:   true,
	}
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	var (
		password string
		err      error
	)
	if query.Strong {
		password, err = h.generator.GenerateStrong(query.Length)
	} else {
		password, err = h.generator.Generate(entity.PasswordOptions{
			Length:         query.Length,
			Uppercase:      query.UseUppercase,
			Digits:         query.UseDigits,
			Special:        query.UseSpecial,
			AvoidAmbiguous: query.AvoidAmbiguous,
		})
	}
	if err != nil {
		return err
	}

	return response.OK(map[string]any{
		"password": password,
		"length":   len(password),
		"strength": newStrengthResponse(h.generator.CheckStrength(password)),
	}, "Password generated successfully").Send(c)
}

// GeneratePassphrase returns a memorable passphrase and its strength
func (h *AuthHandler) GeneratePassphrase(c echo.Context) error {
	query := GeneratePassphraseQuery{WordCount: 4, Separator: "-"}
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	passphrase, err := h.generator.GeneratePassphrase(query.WordCount, query.Separator)
	if err != nil {
		return err
	}

	return response.OK(map[string]any{
		"passphrase": passphrase,
		"word_count": query.WordCount,
		"length":     len(passphrase),
		"strength":   newStrengthResponse(h.generator.CheckStrength(passphrase)),
	}, "Passphrase generated successfully").Send(c)
}

// CheckPasswordStrength scores a password without echoing it back
func (h *AuthHandler) CheckPasswordStrength(c echo.Context) error {
	var req CheckStrengthRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	return response.OK(map[string]any{
		"password": strings.Repeat("*", len([]rune(req.Password))),
		"strength": newStrengthResponse(h.generator.CheckStrength(req.Password)),
	}, response.MessageSuccess).Send(c)
}
