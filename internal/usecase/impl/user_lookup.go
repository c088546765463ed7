package impl

import (
	"context"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/repository"
	"catalog/internal/errors"
)

// findByLogin resolves a username first and falls back to the email address.
func findByLogin(ctx context.Context, repo repository.UserRepository, login string) (*entity.User, error) {
	user, err := repo.FindByUsername(ctx, login)
	if err == nil || !isUserNotFound(err) {
		return user, err
	}

	return repo.FindByEmail(ctx, login)
}

func isUserNotFound(err error) bool {
	return err != nil && errors.Is(err, repository.ErrUserNotFound)
}
