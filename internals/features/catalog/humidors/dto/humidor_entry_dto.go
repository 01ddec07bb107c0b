package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type CreateHumidorEntryRequest struct {
	CigarID    uuid.UUID  `json:"cigar_id" validate:"required"`
	Status     string     `json:"status" validate:"omitempty,oneof=owned wishlist"`
	Quantity   *int       `json:"quantity" validate:"omitempty,gte=0,lte=10000"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
	AcquiredAt *time.Time `json:"acquired_at"`
}

func (r *CreateHumidorEntryRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Notes != nil {
		r.Notes = lo.ToPtr(strings.TrimSpace(*r.Notes))
	}
}

type UpdateHumidorEntryRequest struct {
	Status     *string    `json:"status" validate:"omitempty,oneof=owned wishlist"`
	Quantity   *int       `json:"quantity" validate:"omitempty,gte=0,lte=10000"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
	AcquiredAt *time.Time `json:"acquired_at"`
}

func (r *UpdateHumidorEntryRequest) Normalize() {
	if r.Status != nil {
		r.Status = lo.ToPtr(strings.ToLower(strings.TrimSpace(*r.Status)))
	}
	if r.Notes != nil {
		r.Notes = lo.ToPtr(strings.TrimSpace(*r.Notes))
	}
}

func (r UpdateHumidorEntryRequest) Changes() map[string]any {
	out := map[string]any{}
	if r.Status != nil {
		out["humidor_entry_status"] = *r.Status
	}
	if r.Quantity != nil {
		out["humidor_entry_quantity"] = *r.Quantity
	}
	if r.Notes != nil {
		out["humidor_entry_notes"] = *r.Notes
	}
	if r.AcquiredAt != nil {
		out["humidor_entry_acquired_at"] = r.AcquiredAt.UTC()
	}
	return out
}

type HumidorEntryDTO struct {
	EntryID    uuid.UUID  `json:"entry_id"`
	Status     string     `json:"status"`
	Quantity   int        `json:"quantity"`
	Notes      *string    `json:"notes"`
	AcquiredAt *time.Time `json:"acquired_at"`
	CreatedAt  time.Time  `json:"created_at"`
	Cigar      CigarRef   `json:"cigar"`
}

type CigarRef struct {
	CigarID uuid.UUID `json:"cigar_id"`
	Slug    string    `json:"slug"`
	Name    string    `json:"name"`
	Brand   string    `json:"brand"`
}

type HumidorEntryRow struct {
	HumidorEntryID         uuid.UUID
	HumidorEntryCigarID    uuid.UUID
	HumidorEntryStatus     string
	HumidorEntryQuantity   int
	HumidorEntryNotes      *string
	HumidorEntryAcquiredAt *time.Time
	HumidorEntryCreatedAt  time.Time
	CigarSlug              string
	CigarName              string
	CigarBrand             string
}

func ToHumidorEntryDTOs(rows []HumidorEntryRow) []HumidorEntryDTO {
	return lo.Map(rows, func(r HumidorEntryRow, _ int) HumidorEntryDTO {
		return HumidorEntryDTO{
			EntryID:    r.HumidorEntryID,
			Status:     r.HumidorEntryStatus,
			Quantity:   r.HumidorEntryQuantity,
			Notes:      r.HumidorEntryNotes,
			AcquiredAt: r.HumidorEntryAcquiredAt,
			CreatedAt:  r.HumidorEntryCreatedAt,
			Cigar: CigarRef{
				CigarID: r.HumidorEntryCigarID,
				Slug:    r.CigarSlug,
				Name:    r.CigarName,
				Brand:   r.CigarBrand,
			},
		}
	})
}
