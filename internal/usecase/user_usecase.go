package usecase

import (
	"context"

	"catalog/internal/domain/entity"
)

// UpdateProfileInput is a partial update of the fields a user may edit on their own account.
type UpdateProfileInput struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
}

// UpdateUserInput adds the administrator-only fields to a profile update.
type UpdateUserInput struct {
	UpdateProfileInput

	Role       *entity.Role
	IsActive   *bool
	IsVerified *bool
}

// UserPage is one slice of users plus the total number of accounts.
type UserPage struct {
	Items []*entity.User
	Total int64
}

// UserUsecase defines account management. Actor is the authenticated caller.
type UserUsecase interface {
	ListUsers(ctx context.Context, skip, limit int) (*UserPage, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor *entity.User, input *UpdateProfileInput) (*entity.User, error)
	UpdateUser(ctx context.Context, actor *entity.User, id int64, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *entity.User, id int64) error
	SetActive(ctx context.Context, actor *entity.User, id int64, active bool) (*entity.User, error)
	VerifyUser(ctx context.Context, id int64) (*entity.User, error)
	Stats(ctx context.Context) (*entity.UserStats, error)
	// PromoteToAdmin makes the account with the given username or email a verified admin.
	PromoteToAdmin(ctx context.Context, login string) (*entity.User, error)
}
