package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmokingSessionModel struct {
	SmokingSessionID              uuid.UUID  `gorm:"column:smoking_session_id;type:uuid;primaryKey" json:"smoking_session_id"`
	SmokingSessionUserID          uuid.UUID  `gorm:"column:smoking_session_user_id;type:uuid;not null;index:idx_sessions_user_smoked,priority:1" json:"smoking_session_user_id"`
	SmokingSessionCigarID         uuid.UUID  `gorm:"column:smoking_session_cigar_id;type:uuid;not null;index" json:"smoking_session_cigar_id"`
	SmokingSessionShopID          *uuid.UUID `gorm:"column:smoking_session_shop_id;type:uuid" json:"smoking_session_shop_id,omitempty"`
	SmokingSessionSmokedAt        time.Time  `gorm:"column:smoking_session_smoked_at;not null;index:idx_sessions_user_smoked,priority:2" json:"smoking_session_smoked_at"`
	SmokingSessionDurationMinutes *int       `gorm:"column:smoking_session_duration_minutes" json:"smoking_session_duration_minutes,omitempty"`
	SmokingSessionPairing         *string    `gorm:"column:smoking_session_pairing;size:120" json:"smoking_session_pairing,omitempty"`
	SmokingSessionNotes           *string    `gorm:"column:smoking_session_notes;type:text" json:"smoking_session_notes,omitempty"`
	SmokingSessionCreatedAt       time.Time  `gorm:"column:smoking_session_created_at;autoCreateTime" json:"smoking_session_created_at"`
	SmokingSessionUpdatedAt       time.Time  `gorm:"column:smoking_session_updated_at;autoUpdateTime" json:"smoking_session_updated_at"`
}

func (SmokingSessionModel) TableName() string { return "smoking_sessions" }

func (m *SmokingSessionModel) BeforeCreate(*gorm.DB) error {
	if m.SmokingSessionID == uuid.Nil {
		m.SmokingSessionID = uuid.New()
	}
	if m.SmokingSessionSmokedAt.IsZero() {
		m.SmokingSessionSmokedAt = time.Now().UTC()
	}
	return nil
}
