package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type CreateSessionRequest struct {
	CigarID         uuid.UUID  `json:"cigar_id" validate:"required"`
	ShopID          *uuid.UUID `json:"shop_id"`
	SmokedAt        *time.Time `json:"smoked_at"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gte=1,lte=600"`
	Pairing         *string    `json:"pairing" validate:"omitempty,max=120"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
}

func (r *CreateSessionRequest) Normalize() {
	if r.Pairing != nil {
		r.Pairing = lo.ToPtr(strings.TrimSpace(*r.Pairing))
	}
	if r.Notes != nil {
		r.Notes = lo.ToPtr(strings.TrimSpace(*r.Notes))
	}
}

type UpdateSessionRequest struct {
	SmokedAt        *time.Time `json:"smoked_at"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gte=1,lte=600"`
	Pairing         *string    `json:"pairing" validate:"omitempty,max=120"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
}

func (r UpdateSessionRequest) Changes() map[string]any {
	out := map[string]any{}
	if r.SmokedAt != nil {
		out["smoking_session_smoked_at"] = r.SmokedAt.UTC()
	}
	if r.DurationMinutes != nil {
		out["smoking_session_duration_minutes"] = *r.DurationMinutes
	}
	if r.Pairing != nil {
		out["smoking_session_pairing"] = strings.TrimSpace(*r.Pairing)
	}
	if r.Notes != nil {
		out["smoking_session_notes"] = strings.TrimSpace(*r.Notes)
	}
	return out
}

type SessionDTO struct {
	SessionID       uuid.UUID  `json:"session_id"`
	SmokedAt        time.Time  `json:"smoked_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Pairing         *string    `json:"pairing"`
	Notes           *string    `json:"notes"`
	CigarID         uuid.UUID  `json:"cigar_id"`
	CigarSlug       string     `json:"cigar_slug"`
	CigarName       string     `json:"cigar_name"`
	ShopID          *uuid.UUID `json:"shop_id"`
	ShopName        *string    `json:"shop_name"`
}

type SessionRow struct {
	SmokingSessionID              uuid.UUID
	SmokingSessionSmokedAt        time.Time
	SmokingSessionDurationMinutes *int
	SmokingSessionPairing         *string
	SmokingSessionNotes           *string
	SmokingSessionCigarID         uuid.UUID
	SmokingSessionShopID          *uuid.UUID
	CigarSlug                     string
	CigarName                     string
	ShopName                      *string
}

func ToSessionDTOs(rows []SessionRow) []SessionDTO {
	return lo.Map(rows, func(r SessionRow, _ int) SessionDTO {
		return SessionDTO{
			SessionID:       r.SmokingSessionID,
			SmokedAt:        r.SmokingSessionSmokedAt,
			DurationMinutes: r.SmokingSessionDurationMinutes,
			Pairing:         r.SmokingSessionPairing,
			Notes:           r.SmokingSessionNotes,
			CigarID:         r.SmokingSessionCigarID,
			CigarSlug:       r.CigarSlug,
			CigarName:       r.CigarName,
			ShopID:          r.SmokingSessionShopID,
			ShopName:        r.ShopName,
		}
	})
}
