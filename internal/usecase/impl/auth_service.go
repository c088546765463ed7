package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"
	"catalog/internal/errors"
	"catalog/internal/usecase"

	"go.uber.org/fx"
)

// MinPasswordBytes is the shortest password accepted on registration or change.
const MinPasswordBytes = 6

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account. The very first account becomes a verified administrator.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if err := validatePasswordLength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		Email:          strings.TrimSpace(input.Email),
		Username:       strings.TrimSpace(input.Username),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Role:           entity.RoleUser,
		IsActive:       true,
		HashedPassword: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if err := ensureEmailFree(ctx, userRepo, user.Email, 0); err != nil {
			return err
		}
		if err := ensureUsernameFree(ctx, userRepo, user.Username, 0); err != nil {
			return err
		}

		count, err := userRepo.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count users")
		}
		if count == 0 {
			user.Role = entity.RoleAdmin
			user.IsVerified = true
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", user.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID), slog.String("role", user.Role.String()))

	return user, nil
}

// Login verifies credentials, records the login time and issues a token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	user, err := findByLogin(ctx, srv.userRepo, strings.TrimSpace(input.Login))
	if isUserNotFound(err) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.HashedPassword) {
		srv.log(ctx).Warn("Invalid password", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	now := srv.now().UTC()
	user.LastLogin = &now
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to record last login")
	}

	return srv.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		srv.log(ctx).Debug("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if isUserNotFound(err) {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for refresh")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	return srv.issueTokens(ctx, user)
}

// Authenticate resolves an access token to the account it was issued for.
func (srv *authService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(accessToken, service.TokenTypeAccess)
	if err != nil {
		srv.log(ctx).Debug("Access token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if isUserNotFound(err) {
		return nil, domainerrors.ErrTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load authenticated user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (srv *authService) ChangePassword(ctx context.Context, user *entity.User, input *usecase.ChangePasswordInput) error {
	if err := validatePasswordLength(input.NewPassword); err != nil {
		return err
	}
	if !srv.hasher.Check(input.CurrentPassword, user.HashedPassword) {
		return domainerrors.ErrInvalidPassword
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Int64("userID", user.ID), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed
	}

	user.HashedPassword = hashedPassword
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.Int64("userID", user.ID))

	return nil
}

func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.TokenOutput, error) {
	pair, err := srv.tokenService.GenerateTokens(user)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed
	}

	return &usecase.TokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    usecase.TokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// validatePasswordLength enforces the byte bounds bcrypt can honour.
func validatePasswordLength(password string) error {
	n := len(password)
	switch {
	case n < MinPasswordBytes:
		return domainerrors.PasswordTooShort(MinPasswordBytes, n)
	case n > service.MaxPasswordBytes:
		return domainerrors.PasswordTooLong(service.MaxPasswordBytes, n)
	default:
		return nil
	}
}

// ensureEmailFree fails when another account than selfID owns email.
func ensureEmailFree(ctx context.Context, repo repository.UserRepository, email string, selfID int64) error {
	existing, err := repo.FindByEmail(ctx, email)
	if isUserNotFound(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check email")
	}
	if existing.ID != selfID {
		return domainerrors.ErrEmailExists
	}

	return nil
}

// ensureUsernameFree fails when another account than selfID owns username.
func ensureUsernameFree(ctx context.Context, repo repository.UserRepository, username string, selfID int64) error {
	existing, err := repo.FindByUsername(ctx, username)
	if isUserNotFound(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check username")
	}
	if existing.ID != selfID {
		return domainerrors.ErrUsernameExists
	}

	return nil
}
