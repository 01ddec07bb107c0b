package dto

import (
	"strings"

	"github.com/google/uuid"

	"stogie_backend/internals/features/catalog/shops/model"
)

type CreateShopRequest struct {
	Name      string   `json:"name" validate:"required,notblank,max=120"`
	Address   *string  `json:"address" validate:"omitempty,max=255"`
	City      string   `json:"city" validate:"required,notblank,max=80"`
	Country   string   `json:"country" validate:"required,notblank,max=80"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Website   *string  `json:"website" validate:"omitempty,url,max=255"`
}

func (r *CreateShopRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.Country = strings.TrimSpace(r.Country)
}

func (r CreateShopRequest) ToModel(slug string, createdBy uuid.UUID) model.ShopModel {
	return model.ShopModel{
		ShopSlug:      slug,
		ShopName:      r.Name,
		ShopAddress:   r.Address,
		ShopCity:      r.City,
		ShopCountry:   r.Country,
		ShopLatitude:  r.Latitude,
		ShopLongitude: r.Longitude,
		ShopWebsite:   r.Website,
		ShopCreatedBy: &createdBy,
	}
}
