package dto

import (
	"time"

	"github.com/google/uuid"
)

type FollowStatusResponse struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

type FollowUserDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	FollowedAt  time.Time `json:"followed_at"`
}
