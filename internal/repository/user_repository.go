package repository

import (
	"context"
	"time"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error, "create user")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "find user by email")
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "find user by username")
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).UpdateColumn("password", hash)
	if res.Error != nil {
		return translate(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update password")
	}
	return nil
}

// UpdateLastSeen skips hooks; called from the activity middleware.
func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).UpdateColumn("last_seen", time.Now()).Error
}
