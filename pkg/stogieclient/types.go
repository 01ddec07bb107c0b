package stogieclient

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

type FeedItem struct {
	PostID        uuid.UUID  `json:"post_id"`
	PostAuthorID  uuid.UUID  `json:"post_author_id"`
	PostImageURL  string     `json:"post_image_url"`
	PostCaption   string     `json:"post_caption"`
	PostCigarID   *uuid.UUID `json:"post_cigar_id"`
	PostCreatedAt time.Time  `json:"post_created_at"`
	Author        Author     `json:"author"`
	LikeCount     int64      `json:"like_count"`
	CommentCount  int64      `json:"comment_count"`
	LikedByMe     bool       `json:"liked_by_me"`
}

type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type Comment struct {
	CommentID uuid.UUID `json:"comment_id"`
	PostID    uuid.UUID `json:"post_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
}

// Feed filters accepted by GET /api/posts.
const (
	FilterAll       = ""
	FilterFollowing = "following"
)
