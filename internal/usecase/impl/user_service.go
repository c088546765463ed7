package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/errors"
	"catalog/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns one page of accounts ordered by id.
func (srv *userService) ListUsers(ctx context.Context, skip, limit int) (*usecase.UserPage, error) {
	users, total, err := srv.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserPage{Items: users, Total: total}, nil
}

// GetUser returns a single account.
func (srv *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return srv.load(ctx, srv.userRepo, id)
}

// UpdateProfile edits the caller's own contact details.
func (srv *userService) UpdateProfile(ctx context.Context, actor *entity.User, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := srv.load(ctx, userRepo, actor.ID)
		if err != nil {
			return err
		}
		if err := applyProfile(ctx, userRepo, user, input); err != nil {
			return err
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return srv.translate(err, user.ID, "failed to update profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.Int64("userID", updated.ID))

	return updated, nil
}

// UpdateUser lets an administrator edit any account. Administrators cannot deactivate themselves.
func (srv *userService) UpdateUser(ctx context.Context, actor *entity.User, id int64, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := srv.load(ctx, userRepo, id)
		if err != nil {
			return err
		}
		if user.ID == actor.ID && input.IsActive != nil && !*input.IsActive {
			return domainerrors.ErrSelfDeactivation
		}
		if err := applyProfile(ctx, userRepo, user, &input.UpdateProfileInput); err != nil {
			return err
		}
		if input.Role != nil {
			if !input.Role.IsValid() {
				return domainerrors.BadRequest("INVALID_ROLE", "Unknown role").With("role", input.Role.String())
			}
			user.Role = *input.Role
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if input.IsVerified != nil {
			user.IsVerified = *input.IsVerified
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return srv.translate(err, user.ID, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated by administrator", slog.Int64("userID", id), slog.Int64("actorID", actor.ID))

	return updated, nil
}

// DeleteUser removes an account other than the caller's.
func (srv *userService) DeleteUser(ctx context.Context, actor *entity.User, id int64) error {
	if _, err := srv.load(ctx, srv.userRepo, id); err != nil {
		return err
	}
	if id == actor.ID {
		return domainerrors.ErrSelfDeletion
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return srv.translate(err, id, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("userID", id), slog.Int64("actorID", actor.ID))

	return nil
}

// SetActive activates or deactivates an account.
func (srv *userService) SetActive(ctx context.Context, actor *entity.User, id int64, active bool) (*entity.User, error) {
	if !active && id == actor.ID {
		return nil, domainerrors.ErrSelfDeactivation
	}

	return srv.mutate(ctx, id, func(user *entity.User) {
		user.IsActive = active
	})
}

// VerifyUser marks an account as verified.
func (srv *userService) VerifyUser(ctx context.Context, id int64) (*entity.User, error) {
	return srv.mutate(ctx, id, func(user *entity.User) {
		user.IsVerified = true
	})
}

// Stats aggregates account counters.
func (srv *userService) Stats(ctx context.Context) (*entity.UserStats, error) {
	stats, err := srv.userRepo.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user stats")
	}

	return stats, nil
}

// PromoteToAdmin makes the account a verified, active administrator.
func (srv *userService) PromoteToAdmin(ctx context.Context, login string) (*entity.User, error) {
	user, err := findByLogin(ctx, srv.userRepo, strings.TrimSpace(login))
	if isUserNotFound(err) {
		return nil, domainerrors.NotFound("User", nil).With("login", login)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	user.Role = entity.RoleAdmin
	user.IsVerified = true
	user.IsActive = true
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, srv.translate(err, user.ID, "failed to promote user")
	}

	srv.log(ctx).Info("User promoted to admin", slog.Int64("userID", user.ID))

	return user, nil
}

func (srv *userService) mutate(ctx context.Context, id int64, apply func(user *entity.User)) (*entity.User, error) {
	user, err := srv.load(ctx, srv.userRepo, id)
	if err != nil {
		return nil, err
	}

	apply(user)
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, srv.translate(err, id, "failed to update user")
	}

	return user, nil
}

func (srv *userService) load(ctx context.Context, repo repository.UserRepository, id int64) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.translate(err, id, "failed to find user")
	}

	return user, nil
}

func (srv *userService) translate(err error, id int64, operation string) error {
	if isUserNotFound(err) {
		return domainerrors.NotFound("User", id)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, operation)
}

// applyProfile copies the supplied profile fields, rejecting an email or username owned by someone else.
func applyProfile(ctx context.Context, repo repository.UserRepository, user *entity.User, input *usecase.UpdateProfileInput) error {
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != "" && email != user.Email {
			if err := ensureEmailFree(ctx, repo, email, user.ID); err != nil {
				return err
			}
			user.Email = email
		}
	}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != "" && username != user.Username {
			if err := ensureUsernameFree(ctx, repo, username, user.ID); err != nil {
				return err
			}
			user.Username = username
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	return nil
}
