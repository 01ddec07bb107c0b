package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"max=5000"`
}

func (r *CreateReviewRequest) Normalize() { r.Text = strings.TrimSpace(r.Text) }

type UpdateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Text   *string `json:"text" validate:"omitempty,max=5000"`
}

func (r *UpdateReviewRequest) Normalize() {
	if r.Text != nil {
		t := strings.TrimSpace(*r.Text)
		r.Text = &t
	}
}

func (r UpdateReviewRequest) Changes() map[string]any {
	out := map[string]any{}
	if r.Rating != nil {
		out["cigar_review_rating"] = *r.Rating
	}
	if r.Text != nil {
		out["cigar_review_text"] = *r.Text
	}
	return out
}

type ReviewDTO struct {
	ReviewID  uuid.UUID `json:"review_id"`
	CigarID   uuid.UUID `json:"cigar_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    struct {
		UserID      uuid.UUID `json:"user_id"`
		UserName    string    `json:"user_name"`
		DisplayName string    `json:"display_name"`
		AvatarURL   *string   `json:"avatar_url"`
	} `json:"author"`
}

type ReviewRow struct {
	CigarReviewID        uuid.UUID
	CigarReviewCigarID   uuid.UUID
	CigarReviewUserID    uuid.UUID
	CigarReviewRating    int
	CigarReviewText      string
	CigarReviewCreatedAt time.Time
	CigarReviewUpdatedAt time.Time
	AuthorHandle         string
	AuthorDisplayName    *string
	AuthorAvatarURL      *string
}

func (r ReviewRow) ToDTO() ReviewDTO {
	out := ReviewDTO{
		ReviewID:  r.CigarReviewID,
		CigarID:   r.CigarReviewCigarID,
		Rating:    r.CigarReviewRating,
		Text:      r.CigarReviewText,
		CreatedAt: r.CigarReviewCreatedAt,
		UpdatedAt: r.CigarReviewUpdatedAt,
	}
	out.Author.UserID = r.CigarReviewUserID
	out.Author.UserName = r.AuthorHandle
	out.Author.DisplayName = lo.FromPtr(r.AuthorDisplayName)
	out.Author.AvatarURL = r.AuthorAvatarURL
	return out
}

func ToReviewDTOs(rows []ReviewRow) []ReviewDTO {
	return lo.Map(rows, func(r ReviewRow, _ int) ReviewDTO { return r.ToDTO() })
}
