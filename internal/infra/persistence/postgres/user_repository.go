// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/errors"
	"catalog/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by id", "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by email", "email = ?", email)
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by username", "username = ?", username)
}

func (repo *userRepository) first(ctx context.Context, operation, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, operation)
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// List returns one page of users ordered by id.
func (repo *userRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var rows []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUserDomain(row))
	}

	return users, total, nil
}

// Count returns the number of users.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return total, nil
}

type userStatsRow struct {
	TotalUsers    int64
	ActiveUsers   int64
	VerifiedUsers int64
	AdminUsers    int64
}

// Stats aggregates every counter in a single scan of the table.
func (repo *userRepository) Stats(ctx context.Context) (*entity.UserStats, error) {
	var row userStatsRow
	err := repo.db.WithContext(ctx).Raw(`SELECT
		COUNT(*) AS total_users,
		COUNT(*) FILTER (WHERE is_active) AS active_users,
		COUNT(*) FILTER (WHERE is_verified) AS verified_users,
		COUNT(*) FILTER (WHERE role = ?) AS admin_users
	FROM users`, entity.RoleAdmin.String()).Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate user stats")
	}

	return &entity.UserStats{
		TotalUsers:    row.TotalUsers,
		ActiveUsers:   row.ActiveUsers,
		VerifiedUsers: row.VerifiedUsers,
		AdminUsers:    row.AdminUsers,
	}, nil
}

// Create persists a new user entity and copies back the generated id and timestamps.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateWriteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update overwrites every mutable column of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(userM).Select("*").Omit("id", "created_at").Updates(userM)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Delete removes a user by id.
func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// translateWriteError converts PostgreSQL integrity errors to domain errors.
func translateWriteError(err error, operation string) error {
	switch {
	case isUniqueConstraintViolation(err):
		switch violatedConstraint(err) {
		case constraintUsersEmail:
			return domainerrors.ErrEmailExists
		case constraintUsersUsername:
			return domainerrors.ErrUsernameExists
		default:
			return domainerrors.ErrUserAlreadyExists
		}
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err), isForeignKeyConstraintViolation(err):
		return domainerrors.BadRequest(domainerrors.CodeBadRequest, "Invalid user data").With("operation", operation)
	default:
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, operation)
	}
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		Username:       data.Username,
		FirstName:      deref(data.FirstName),
		LastName:       deref(data.LastName),
		Role:           entity.Role(data.Role),
		IsActive:       data.IsActive,
		IsVerified:     data.IsVerified,
		HashedPassword: data.HashedPassword,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		LastLogin:      data.LastLogin,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:             data.ID,
		Email:          data.Email,
		Username:       data.Username,
		FirstName:      nullable(data.FirstName),
		LastName:       nullable(data.LastName),
		Role:           data.Role.String(),
		IsActive:       data.IsActive,
		IsVerified:     data.IsVerified,
		HashedPassword: data.HashedPassword,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		LastLogin:      data.LastLogin,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return &s
}
