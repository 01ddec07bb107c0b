package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfileModel is 1:1 with users and created during registration.
type UserProfileModel struct {
	UserProfileUserID      uuid.UUID `gorm:"column:user_profile_user_id;type:uuid;primaryKey" json:"user_profile_user_id"`
	UserProfileDisplayName string    `gorm:"column:user_profile_display_name;size:60;not null;default:''" json:"user_profile_display_name"`
	UserProfileAvatarURL   *string   `gorm:"column:user_profile_avatar_url;size:500" json:"user_profile_avatar_url,omitempty"`
	UserProfileBio         *string   `gorm:"column:user_profile_bio;size:300" json:"user_profile_bio,omitempty"`
	UserProfileLocation    *string   `gorm:"column:user_profile_location;size:100" json:"user_profile_location,omitempty"`
	UserProfileCreatedAt   time.Time `gorm:"column:user_profile_created_at;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt   time.Time `gorm:"column:user_profile_updated_at;autoUpdateTime" json:"user_profile_updated_at"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }
