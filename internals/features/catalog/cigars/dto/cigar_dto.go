package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	"stogie_backend/internals/features/catalog/cigars/model"
)

type CreateCigarRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=120"`
	Brand       string   `json:"brand" validate:"required,notblank,max=80"`
	Origin      *string  `json:"origin" validate:"omitempty,max=60"`
	Wrapper     *string  `json:"wrapper" validate:"omitempty,max=60"`
	Strength    *string  `json:"strength" validate:"omitempty,oneof=mild medium full"`
	RingGauge   *int     `json:"ring_gauge" validate:"omitempty,gte=20,lte=80"`
	LengthIn    *float64 `json:"length_in" validate:"omitempty,gt=0,lte=12"`
	FlavorNotes []string `json:"flavor_notes" validate:"max=20,dive,notblank,max=40"`
}

func (r *CreateCigarRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Brand = strings.TrimSpace(r.Brand)
	if r.Strength != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Strength))
		r.Strength = &s
	}
	r.FlavorNotes = lo.Uniq(lo.Map(r.FlavorNotes, func(s string, _ int) string {
		return strings.ToLower(strings.TrimSpace(s))
	}))
}

// ToModel builds the row; slug is resolved by the caller.
func (r CreateCigarRequest) ToModel(slug string, createdBy *uuid.UUID) (model.CigarModel, error) {
	notes := r.FlavorNotes
	if notes == nil {
		notes = []string{}
	}
	raw, err := sonic.Marshal(notes)
	if err != nil {
		return model.CigarModel{}, err
	}
	return model.CigarModel{
		CigarSlug:        slug,
		CigarName:        r.Name,
		CigarBrand:       r.Brand,
		CigarOrigin:      r.Origin,
		CigarWrapper:     r.Wrapper,
		CigarStrength:    r.Strength,
		CigarRingGauge:   r.RingGauge,
		CigarLengthIn:    r.LengthIn,
		CigarFlavorNotes: datatypes.JSON(raw),
		CigarCreatedBy:   createdBy,
	}, nil
}

type CigarResponse struct {
	CigarID     uuid.UUID `json:"cigar_id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Origin      *string   `json:"origin"`
	Wrapper     *string   `json:"wrapper"`
	Strength    *string   `json:"strength"`
	RingGauge   *int      `json:"ring_gauge"`
	LengthIn    *float64  `json:"length_in"`
	FlavorNotes []string  `json:"flavor_notes"`
	ReviewCount int64     `json:"review_count"`
	AvgRating   *float64  `json:"avg_rating"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToCigarResponse(m model.CigarModel) CigarResponse {
	notes := []string{}
	if len(m.CigarFlavorNotes) > 0 {
		_ = sonic.Unmarshal(m.CigarFlavorNotes, &notes)
	}
	return CigarResponse{
		CigarID:     m.CigarID,
		Slug:        m.CigarSlug,
		Name:        m.CigarName,
		Brand:       m.CigarBrand,
		Origin:      m.CigarOrigin,
		Wrapper:     m.CigarWrapper,
		Strength:    m.CigarStrength,
		RingGauge:   m.CigarRingGauge,
		LengthIn:    m.CigarLengthIn,
		FlavorNotes: notes,
		CreatedAt:   m.CigarCreatedAt,
	}
}

// RatingStat is one row of the per-cigar review aggregate.
type RatingStat struct {
	CigarID     uuid.UUID
	ReviewCount int64
	AvgRating   float64
}
