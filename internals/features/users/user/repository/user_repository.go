package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/user/model"
)

var ErrUserNotFound = errors.New("user not found")

// FindActiveByHandle resolves a public @handle (case-insensitive, leading @ allowed).
func FindActiveByHandle(ctx context.Context, db *gorm.DB, handle string) (*model.UserModel, error) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
	if h == "" {
		return nil, ErrUserNotFound
	}
	var u model.UserModel
	err := db.WithContext(ctx).
		Where("LOWER(user_name) = ? AND is_active = ?", h, true).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindProfile returns the profile row, creating an empty one if registration predates it.
func FindProfile(ctx context.Context, db *gorm.DB, user model.UserModel) (*model.UserProfileModel, error) {
	p := model.UserProfileModel{UserProfileUserID: user.ID, UserProfileDisplayName: user.UserName}
	err := db.WithContext(ctx).
		Where("user_profile_user_id = ?", user.ID).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func UpdateProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&model.UserProfileModel{}).
		Where("user_profile_user_id = ?", userID).
		Updates(changes).Error
}
