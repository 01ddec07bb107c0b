package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	PostID       uuid.UUID  `gorm:"column:post_id;type:uuid;primaryKey" json:"post_id"`
	PostAuthorID uuid.UUID  `gorm:"column:post_author_id;type:uuid;not null;index:idx_posts_author_created,priority:1" json:"post_author_id"`
	PostImageURL string     `gorm:"column:post_image_url;type:text;not null" json:"post_image_url"`
	PostCaption  string     `gorm:"column:post_caption;type:text;not null;default:''" json:"post_caption"`
	PostCigarID  *uuid.UUID `gorm:"column:post_cigar_id;type:uuid;index" json:"post_cigar_id,omitempty"`

	PostCreatedAt time.Time  `gorm:"column:post_created_at;not null;autoCreateTime;index:idx_posts_created;index:idx_posts_author_created,priority:2" json:"post_created_at"`
	PostUpdatedAt time.Time  `gorm:"column:post_updated_at;autoUpdateTime" json:"post_updated_at"`
	PostDeletedAt *time.Time `gorm:"column:post_deleted_at;index" json:"post_deleted_at,omitempty"`
}

func (PostModel) TableName() string { return "posts" }

func (m *PostModel) BeforeCreate(*gorm.DB) error {
	if m.PostID == uuid.Nil {
		m.PostID = uuid.New()
	}
	return nil
}
