package model

import (
	"time"

	"github.com/google/uuid"
)

// UserFollowModel: follower follows followee. The pair is the primary key.
type UserFollowModel struct {
	UserFollowFollowerID uuid.UUID `gorm:"column:user_follow_follower_id;type:uuid;primaryKey" json:"user_follow_follower_id"`
	UserFollowFolloweeID uuid.UUID `gorm:"column:user_follow_followee_id;type:uuid;primaryKey;index" json:"user_follow_followee_id"`
	UserFollowCreatedAt  time.Time `gorm:"column:user_follow_created_at;autoCreateTime" json:"user_follow_created_at"`
}

func (UserFollowModel) TableName() string { return "user_follows" }
