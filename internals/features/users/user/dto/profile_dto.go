package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stogie_backend/internals/features/users/user/model"
)

type ProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      *string   `json:"avatar_url"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	JoinedAt       time.Time `json:"joined_at"`
}

func ToProfileResponse(u model.UserModel, p model.UserProfileModel) ProfileResponse {
	return ProfileResponse{
		UserID:      u.ID,
		UserName:    u.UserName,
		DisplayName: p.UserProfileDisplayName,
		AvatarURL:   p.UserProfileAvatarURL,
		Bio:         p.UserProfileBio,
		Location:    p.UserProfileLocation,
		JoinedAt:    u.CreatedAt,
	}
}

// UpdateProfileRequest is a partial update: nil fields are left alone, "" clears optional ones.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=60"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,max=500"`
	Bio         *string `json:"bio" validate:"omitempty,max=300"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) Normalize() {
	for _, p := range []*string{r.DisplayName, r.AvatarURL, r.Bio, r.Location} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// Changes returns the column map for UpdateProfile.
func (r UpdateProfileRequest) Changes() map[string]any {
	out := map[string]any{}
	if r.DisplayName != nil {
		out["user_profile_display_name"] = *r.DisplayName
	}
	setNullable := func(col string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			out[col] = nil
			return
		}
		out[col] = *v
	}
	setNullable("user_profile_avatar_url", r.AvatarURL)
	setNullable("user_profile_bio", r.Bio)
	setNullable("user_profile_location", r.Location)
	return out
}
