package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLikeModel: the row existing means the user likes the post. The composite
// primary key is what keeps a double-submitted like from producing two rows.
type PostLikeModel struct {
	PostLikePostID    uuid.UUID `gorm:"column:post_like_post_id;type:uuid;primaryKey" json:"post_like_post_id"`
	PostLikeUserID    uuid.UUID `gorm:"column:post_like_user_id;type:uuid;primaryKey;index" json:"post_like_user_id"`
	PostLikeCreatedAt time.Time `gorm:"column:post_like_created_at;autoCreateTime" json:"post_like_created_at"`
}

func (PostLikeModel) TableName() string { return "post_likes" }
