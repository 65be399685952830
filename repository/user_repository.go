package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"villa-backend/models"
)

const UserNameExistsMessage = "Username already exists"

type UserRepository struct {
	*Repository[models.LocalUser]
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.LocalUser](db, logger)}
}

// GetByUsername matches the user name case-insensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.LocalUser, error) {
	return r.GetOne(ctx, Where("user_name_key = ?", models.NormalizeUserName(username)))
}

// IsUnique is true iff no user name equals username up to case.
func (r *UserRepository) IsUnique(ctx context.Context, username string) (bool, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// Create inserts unconditionally; the unique index on user_name_key is
// the only guard here.
func (r *UserRepository) Create(ctx context.Context, user *models.LocalUser) error {
	user.UserNameKey = models.NormalizeUserName(user.UserName)
	return withMessage(r.Repository.Create(ctx, user), ErrDuplicateKey, UserNameExistsMessage)
}
