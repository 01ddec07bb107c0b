package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostCommentModel struct {
	PostCommentID        uuid.UUID  `gorm:"column:post_comment_id;type:uuid;primaryKey" json:"post_comment_id"`
	PostCommentPostID    uuid.UUID  `gorm:"column:post_comment_post_id;type:uuid;not null;index:idx_post_comments_post_created,priority:1" json:"post_comment_post_id"`
	PostCommentUserID    uuid.UUID  `gorm:"column:post_comment_user_id;type:uuid;not null;index" json:"post_comment_user_id"`
	PostCommentText      string     `gorm:"column:post_comment_text;type:text;not null" json:"post_comment_text"`
	PostCommentCreatedAt time.Time  `gorm:"column:post_comment_created_at;not null;autoCreateTime;index:idx_post_comments_post_created,priority:2" json:"post_comment_created_at"`
	PostCommentDeletedAt *time.Time `gorm:"column:post_comment_deleted_at;index" json:"post_comment_deleted_at,omitempty"`
}

func (PostCommentModel) TableName() string { return "post_comments" }

func (m *PostCommentModel) BeforeCreate(*gorm.DB) error {
	if m.PostCommentID == uuid.Nil {
		m.PostCommentID = uuid.New()
	}
	return nil
}
