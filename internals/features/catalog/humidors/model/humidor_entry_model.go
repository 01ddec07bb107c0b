package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOwned    = "owned"
	StatusWishlist = "wishlist"
)

type HumidorEntryModel struct {
	HumidorEntryID         uuid.UUID  `gorm:"column:humidor_entry_id;type:uuid;primaryKey" json:"humidor_entry_id"`
	HumidorEntryUserID     uuid.UUID  `gorm:"column:humidor_entry_user_id;type:uuid;not null;index" json:"humidor_entry_user_id"`
	HumidorEntryCigarID    uuid.UUID  `gorm:"column:humidor_entry_cigar_id;type:uuid;not null;index" json:"humidor_entry_cigar_id"`
	HumidorEntryStatus     string     `gorm:"column:humidor_entry_status;size:10;not null;default:'owned'" json:"humidor_entry_status"`
	HumidorEntryQuantity   int        `gorm:"column:humidor_entry_quantity;not null" json:"humidor_entry_quantity"`
	HumidorEntryNotes      *string    `gorm:"column:humidor_entry_notes;type:text" json:"humidor_entry_notes,omitempty"`
	HumidorEntryAcquiredAt *time.Time `gorm:"column:humidor_entry_acquired_at" json:"humidor_entry_acquired_at,omitempty"`
	HumidorEntryCreatedAt  time.Time  `gorm:"column:humidor_entry_created_at;autoCreateTime" json:"humidor_entry_created_at"`
	HumidorEntryUpdatedAt  time.Time  `gorm:"column:humidor_entry_updated_at;autoUpdateTime" json:"humidor_entry_updated_at"`
}

func (HumidorEntryModel) TableName() string { return "humidor_entries" }

func (m *HumidorEntryModel) BeforeCreate(*gorm.DB) error {
	if m.HumidorEntryID == uuid.Nil {
		m.HumidorEntryID = uuid.New()
	}
	if m.HumidorEntryStatus == "" {
		m.HumidorEntryStatus = StatusOwned
	}
	return nil
}
