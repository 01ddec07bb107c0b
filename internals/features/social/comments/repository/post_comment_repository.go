package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stogie_backend/internals/features/social/comments/dto"
	"stogie_backend/internals/features/social/comments/model"
)

var ErrCommentNotFound = errors.New("comment not found")

const commentSelect = `c.post_comment_id, c.post_comment_post_id, c.post_comment_user_id,
	c.post_comment_text, c.post_comment_created_at,
	u.user_name AS author_handle,
	up.user_profile_display_name AS author_display_name,
	up.user_profile_avatar_url AS author_avatar_url`

func joined(db *gorm.DB) *gorm.DB {
	return db.Table("post_comments c").
		Select(commentSelect).
		Joins("JOIN users u ON u.id = c.post_comment_user_id").
		Joins("LEFT JOIN user_profiles up ON up.user_profile_user_id = c.post_comment_user_id").
		Where("c.post_comment_deleted_at IS NULL")
}

func Create(ctx context.Context, db *gorm.DB, m *model.PostCommentModel) error {
	return db.WithContext(ctx).Create(m).Error
}

// FindByID returns one live comment with its author.
func FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*dto.CommentRow, error) {
	var rows []dto.CommentRow
	if err := joined(db.WithContext(ctx)).
		Where("c.post_comment_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCommentNotFound
	}
	return &rows[0], nil
}

// ListByPost pages a post's live comments, newest first.
func ListByPost(ctx context.Context, db *gorm.DB, postID uuid.UUID, limit, offset int) ([]dto.CommentRow, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(&model.PostCommentModel{}).
		Where("post_comment_post_id = ? AND post_comment_deleted_at IS NULL", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.CommentRow
	err := joined(db.WithContext(ctx)).
		Where("c.post_comment_post_id = ?", postID).
		Order("c.post_comment_created_at DESC, c.post_comment_id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

func SoftDelete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&model.PostCommentModel{}).
		Where("post_comment_id = ? AND post_comment_deleted_at IS NULL", id).
		Update("post_comment_deleted_at", time.Now().UTC()).Error
}
