package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CigarReviewModel: one review per (user, cigar).
type CigarReviewModel struct {
	CigarReviewID        uuid.UUID `gorm:"column:cigar_review_id;type:uuid;primaryKey" json:"cigar_review_id"`
	CigarReviewCigarID   uuid.UUID `gorm:"column:cigar_review_cigar_id;type:uuid;not null;uniqueIndex:uq_cigar_reviews_user_cigar,priority:2;index" json:"cigar_review_cigar_id"`
	CigarReviewUserID    uuid.UUID `gorm:"column:cigar_review_user_id;type:uuid;not null;uniqueIndex:uq_cigar_reviews_user_cigar,priority:1" json:"cigar_review_user_id"`
	CigarReviewRating    int       `gorm:"column:cigar_review_rating;not null" json:"cigar_review_rating"`
	CigarReviewText      string    `gorm:"column:cigar_review_text;type:text;not null;default:''" json:"cigar_review_text"`
	CigarReviewCreatedAt time.Time `gorm:"column:cigar_review_created_at;autoCreateTime" json:"cigar_review_created_at"`
	CigarReviewUpdatedAt time.Time `gorm:"column:cigar_review_updated_at;autoUpdateTime" json:"cigar_review_updated_at"`
}

func (CigarReviewModel) TableName() string { return "cigar_reviews" }

func (m *CigarReviewModel) BeforeCreate(*gorm.DB) error {
	if m.CigarReviewID == uuid.Nil {
		m.CigarReviewID = uuid.New()
	}
	return nil
}
