package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type FeedFilter string

const (
	FilterAll       FeedFilter = ""
	FilterFollowing FeedFilter = "following"
)

// ParseFeedFilter accepts "", "all" and "following".
func ParseFeedFilter(raw string) (FeedFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return FilterAll, true
	case "following":
		return FilterFollowing, true
	default:
		return "", false
	}
}

// AuthorDTO is embedded in feed items and comments so clients render without a second fetch.
type AuthorDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

// FeedItem is a post enriched with its derived engagement counters.
type FeedItem struct {
	PostID        uuid.UUID  `json:"post_id"`
	PostAuthorID  uuid.UUID  `json:"post_author_id"`
	PostImageURL  string     `json:"post_image_url"`
	PostCaption   string     `json:"post_caption"`
	PostCigarID   *uuid.UUID `json:"post_cigar_id"`
	PostCreatedAt time.Time  `json:"post_created_at"`
	Author        AuthorDTO  `json:"author"`
	LikeCount     int64      `json:"like_count"`
	CommentCount  int64      `json:"comment_count"`
	LikedByMe     bool       `json:"liked_by_me"`
}

// FeedRow is the flat shape the aggregating query scans into.
type FeedRow struct {
	PostID            uuid.UUID
	PostAuthorID      uuid.UUID
	PostImageURL      string
	PostCaption       string
	PostCigarID       *uuid.UUID
	PostCreatedAt     time.Time
	AuthorHandle      string
	AuthorDisplayName *string
	AuthorAvatarURL   *string
	LikeCount         int64
	CommentCount      int64
	LikedByMe         bool
}

func (r FeedRow) ToFeedItem() FeedItem {
	return FeedItem{
		PostID:        r.PostID,
		PostAuthorID:  r.PostAuthorID,
		PostImageURL:  r.PostImageURL,
		PostCaption:   r.PostCaption,
		PostCigarID:   r.PostCigarID,
		PostCreatedAt: r.PostCreatedAt,
		Author: AuthorDTO{
			UserID:      r.PostAuthorID,
			UserName:    r.AuthorHandle,
			DisplayName: lo.FromPtr(r.AuthorDisplayName),
			AvatarURL:   r.AuthorAvatarURL,
		},
		LikeCount:    r.LikeCount,
		CommentCount: r.CommentCount,
		LikedByMe:    r.LikedByMe,
	}
}

// ToFeedItems never returns nil, so an empty page encodes as [].
func ToFeedItems(rows []FeedRow) []FeedItem {
	if len(rows) == 0 {
		return []FeedItem{}
	}
	return lo.Map(rows, func(r FeedRow, _ int) FeedItem { return r.ToFeedItem() })
}

type CreatePostRequest struct {
	ImageURL string     `json:"image_url" validate:"required,url,max=2000"`
	Caption  string     `json:"caption" validate:"max=2200"`
	CigarID  *uuid.UUID `json:"cigar_id"`
}

func (r *CreatePostRequest) Normalize() {
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Caption = strings.TrimSpace(r.Caption)
}

type ToggleLikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type LikerDTO struct {
	AuthorDTO
	LikedAt time.Time `json:"liked_at"`
}

type LikerRow struct {
	UserID      uuid.UUID
	UserName    string
	DisplayName *string
	AvatarURL   *string
	LikedAt     time.Time
}

func ToLikerDTOs(rows []LikerRow) []LikerDTO {
	return lo.Map(rows, func(r LikerRow, _ int) LikerDTO {
		return LikerDTO{
			AuthorDTO: AuthorDTO{
				UserID:      r.UserID,
				UserName:    r.UserName,
				DisplayName: lo.FromPtr(r.DisplayName),
				AvatarURL:   r.AvatarURL,
			},
			LikedAt: r.LikedAt,
		}
	})
}
