package repositories

import (
	"context"

	"inkwell-cms/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateRoles(ctx context.Context, id uint, isWriter, isAdmin bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicateKey(err) {
		return models.ConflictError("user already exists")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if isNotFound(err) {
		return nil, models.NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if isNotFound(err) {
		return nil, models.NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRoles writes both flags; a map is used so false is not skipped.
func (r *userRepository) UpdateRoles(ctx context.Context, id uint, isWriter, isAdmin bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"is_writer": isWriter, "is_admin": isAdmin})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NotFoundError("user not found")
	}
	return nil
}
