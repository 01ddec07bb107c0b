package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cigarModel "stogie_backend/internals/features/catalog/cigars/model"
	"stogie_backend/internals/features/social/posts/dto"
	"stogie_backend/internals/features/social/posts/model"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrCigarNotFound = errors.New("cigar not found")
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// FeedQuery selects which posts a feed page contains. Exactly one of the
// scopes (all, Following, AuthorID, PostID) applies.
type FeedQuery struct {
	ViewerID  *uuid.UUID
	Following bool
	AuthorID  *uuid.UUID
	PostID    *uuid.UUID
	Limit     int
	Offset    int
}

// Feed runs the single aggregating read: the page of posts is cut first, then
// joined with author, grouped like/comment counts and the viewer's like.
// Counts are never null; liked_by_me is FALSE for anonymous viewers.
func (r *PostRepository) Feed(ctx context.Context, q FeedQuery) ([]dto.FeedRow, error) {
	var (
		where = []string{"p.post_deleted_at IS NULL"}
		args  []any
	)
	switch {
	case q.PostID != nil:
		where = append(where, "p.post_id = ?")
		args = append(args, *q.PostID)
	case q.AuthorID != nil:
		where = append(where, "p.post_author_id = ?")
		args = append(args, *q.AuthorID)
	case q.Following && q.ViewerID != nil:
		where = append(where, `p.post_author_id IN (
			SELECT f.user_follow_followee_id FROM user_follows f WHERE f.user_follow_follower_id = ?)`)
		args = append(args, *q.ViewerID)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, q.Offset)

	likedExpr := "FALSE"
	if q.ViewerID != nil {
		likedExpr = `EXISTS (
			SELECT 1 FROM post_likes ml
			WHERE ml.post_like_post_id = p.post_id AND ml.post_like_user_id = ?)`
		args = append(args, *q.ViewerID)
	}

	sql := `
WITH page AS (
	SELECT p.post_id, p.post_author_id, p.post_image_url, p.post_caption, p.post_cigar_id, p.post_created_at
	FROM posts p
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY p.post_created_at DESC, p.post_id DESC
	LIMIT ? OFFSET ?
)
SELECT
	p.post_id,
	p.post_author_id,
	p.post_image_url,
	p.post_caption,
	p.post_cigar_id,
	p.post_created_at,
	u.user_name                   AS author_handle,
	up.user_profile_display_name  AS author_display_name,
	up.user_profile_avatar_url    AS author_avatar_url,
	COALESCE(lc.cnt, 0)           AS like_count,
	COALESCE(cc.cnt, 0)           AS comment_count,
	` + likedExpr + `             AS liked_by_me
FROM page p
JOIN users u ON u.id = p.post_author_id
LEFT JOIN user_profiles up ON up.user_profile_user_id = p.post_author_id
LEFT JOIN (
	SELECT l.post_like_post_id AS post_id, COUNT(*) AS cnt
	FROM post_likes l
	WHERE l.post_like_post_id IN (SELECT post_id FROM page)
	GROUP BY l.post_like_post_id
) lc ON lc.post_id = p.post_id
LEFT JOIN (
	SELECT c.post_comment_post_id AS post_id, COUNT(*) AS cnt
	FROM post_comments c
	WHERE c.post_comment_deleted_at IS NULL
	  AND c.post_comment_post_id IN (SELECT post_id FROM page)
	GROUP BY c.post_comment_post_id
) cc ON cc.post_id = p.post_id
ORDER BY p.post_created_at DESC, p.post_id DESC`

	var rows []dto.FeedRow
	if err := r.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostRepository) Create(ctx context.Context, m *model.PostModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// FindActive returns the post unless it is missing or soft-deleted.
func (r *PostRepository) FindActive(ctx context.Context, postID uuid.UUID) (*model.PostModel, error) {
	var m model.PostModel
	err := r.DB.WithContext(ctx).
		Where("post_id = ? AND post_deleted_at IS NULL", postID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, postID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&model.PostModel{}).
		Where("post_id = ? AND post_deleted_at IS NULL", postID).
		Update("post_deleted_at", time.Now().UTC()).Error
}

// ToggleLike flips (postID, userID) in one transaction and returns the new state and
// the recounted total. When the row is absent it is inserted with ON CONFLICT DO NOTHING,
// so a concurrent duplicate from the same user is a no-op instead of an error.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (liked bool, count int64, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.PostModel{}).
			Where("post_id = ? AND post_deleted_at IS NULL", postID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrPostNotFound
		}

		res := tx.Where("post_like_post_id = ? AND post_like_user_id = ?", postID, userID).
			Delete(&model.PostLikeModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PostLikeModel{
				PostLikePostID: postID,
				PostLikeUserID: userID,
			}).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&model.PostLikeModel{}).
			Where("post_like_post_id = ?", postID).
			Count(&count).Error
	})
	return liked, count, err
}

// CigarExists reports whether a post may reference cigarID.
func (r *PostRepository) CigarExists(ctx context.Context, cigarID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&cigarModel.CigarModel{}).
		Where("cigar_id = ?", cigarID).
		Count(&n).Error
	return n > 0, err
}

func (r *PostRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PostLikeModel{}).
		Where("post_like_post_id = ?", postID).
		Count(&n).Error
	return n, err
}

// Likers lists who liked postID, most recent first.
func (r *PostRepository) Likers(ctx context.Context, postID uuid.UUID, limit, offset int) ([]dto.LikerRow, error) {
	var rows []dto.LikerRow
	err := r.DB.WithContext(ctx).
		Table("post_likes l").
		Select(`u.id AS user_id, u.user_name, up.user_profile_display_name AS display_name,
			up.user_profile_avatar_url AS avatar_url, l.post_like_created_at AS liked_at`).
		Joins("JOIN users u ON u.id = l.post_like_user_id").
		Joins("LEFT JOIN user_profiles up ON up.user_profile_user_id = u.id").
		Where("l.post_like_post_id = ?", postID).
		Order("l.post_like_created_at DESC, u.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}
