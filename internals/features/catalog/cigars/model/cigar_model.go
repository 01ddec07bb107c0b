package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StrengthMild   = "mild"
	StrengthMedium = "medium"
	StrengthFull   = "full"
)

type CigarModel struct {
	CigarID          uuid.UUID      `gorm:"column:cigar_id;type:uuid;primaryKey" json:"cigar_id"`
	CigarSlug        string         `gorm:"column:cigar_slug;size:120;not null;uniqueIndex:uq_cigars_slug" json:"cigar_slug"`
	CigarName        string         `gorm:"column:cigar_name;size:120;not null" json:"cigar_name"`
	CigarBrand       string         `gorm:"column:cigar_brand;size:80;not null;index" json:"cigar_brand"`
	CigarOrigin      *string        `gorm:"column:cigar_origin;size:60" json:"cigar_origin,omitempty"`
	CigarWrapper     *string        `gorm:"column:cigar_wrapper;size:60" json:"cigar_wrapper,omitempty"`
	CigarStrength    *string        `gorm:"column:cigar_strength;size:10" json:"cigar_strength,omitempty"`
	CigarRingGauge   *int           `gorm:"column:cigar_ring_gauge" json:"cigar_ring_gauge,omitempty"`
	CigarLengthIn    *float64       `gorm:"column:cigar_length_in" json:"cigar_length_in,omitempty"`
	CigarFlavorNotes datatypes.JSON `gorm:"column:cigar_flavor_notes" json:"cigar_flavor_notes"`
	CigarCreatedBy   *uuid.UUID     `gorm:"column:cigar_created_by;type:uuid" json:"cigar_created_by,omitempty"`
	CigarCreatedAt   time.Time      `gorm:"column:cigar_created_at;autoCreateTime" json:"cigar_created_at"`
	CigarUpdatedAt   time.Time      `gorm:"column:cigar_updated_at;autoUpdateTime" json:"cigar_updated_at"`
}

func (CigarModel) TableName() string { return "cigars" }

func (m *CigarModel) BeforeCreate(*gorm.DB) error {
	if m.CigarID == uuid.Nil {
		m.CigarID = uuid.New()
	}
	return nil
}
