package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	cigarModel "stogie_backend/internals/features/catalog/cigars/model"
	humidorModel "stogie_backend/internals/features/catalog/humidors/model"
	reviewModel "stogie_backend/internals/features/catalog/reviews/model"
	sessionModel "stogie_backend/internals/features/catalog/sessions/model"
	shopModel "stogie_backend/internals/features/catalog/shops/model"
	commentModel "stogie_backend/internals/features/social/comments/model"
	postModel "stogie_backend/internals/features/social/posts/model"
	authModel "stogie_backend/internals/features/users/auth/model"
	userModel "stogie_backend/internals/features/users/user/model"
	followModel "stogie_backend/internals/features/users/user_follows/model"
)

// Models lists every table in creation order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&userModel.UserProfileModel{},
		&followModel.UserFollowModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
		&postModel.PostModel{},
		&postModel.PostLikeModel{},
		&commentModel.PostCommentModel{},
		&cigarModel.CigarModel{},
		&reviewModel.CigarReviewModel{},
		&humidorModel.HumidorEntryModel{},
		&shopModel.ShopModel{},
		&sessionModel.SmokingSessionModel{},
	}
}

// AutoMigrate bootstraps the tables. Only called when DB_AUTO_MIGRATE is set and in tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Printf("[INFO] auto-migrated %d tables", len(Models()))
	return nil
}
