package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	postDTO "stogie_backend/internals/features/social/posts/dto"
)

const MaxCommentLength = 1000

type CreateCommentRequest struct {
	Text string `json:"text" validate:"notblank,max=1000"`
}

// Normalize trims surrounding whitespace; the trimmed text is what gets stored.
func (r *CreateCommentRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

type CommentDTO struct {
	CommentID uuid.UUID         `json:"comment_id"`
	PostID    uuid.UUID         `json:"post_id"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
	Author    postDTO.AuthorDTO `json:"author"`
}

// CommentRow is the scan target for comments joined with their author.
type CommentRow struct {
	PostCommentID        uuid.UUID
	PostCommentPostID    uuid.UUID
	PostCommentUserID    uuid.UUID
	PostCommentText      string
	PostCommentCreatedAt time.Time
	AuthorHandle         string
	AuthorDisplayName    *string
	AuthorAvatarURL      *string
}

func (r CommentRow) ToDTO() CommentDTO {
	return CommentDTO{
		CommentID: r.PostCommentID,
		PostID:    r.PostCommentPostID,
		Text:      r.PostCommentText,
		CreatedAt: r.PostCommentCreatedAt,
		Author: postDTO.AuthorDTO{
			UserID:      r.PostCommentUserID,
			UserName:    r.AuthorHandle,
			DisplayName: lo.FromPtr(r.AuthorDisplayName),
			AvatarURL:   r.AuthorAvatarURL,
		},
	}
}

func ToCommentDTOs(rows []CommentRow) []CommentDTO {
	return lo.Map(rows, func(r CommentRow, _ int) CommentDTO { return r.ToDTO() })
}
