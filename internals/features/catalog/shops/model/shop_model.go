package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopModel struct {
	ShopID        uuid.UUID  `gorm:"column:shop_id;type:uuid;primaryKey" json:"shop_id"`
	ShopSlug      string     `gorm:"column:shop_slug;size:120;not null;uniqueIndex:uq_shops_slug" json:"shop_slug"`
	ShopName      string     `gorm:"column:shop_name;size:120;not null" json:"shop_name"`
	ShopAddress   *string    `gorm:"column:shop_address;size:255" json:"shop_address,omitempty"`
	ShopCity      string     `gorm:"column:shop_city;size:80;not null;index" json:"shop_city"`
	ShopCountry   string     `gorm:"column:shop_country;size:80;not null" json:"shop_country"`
	ShopLatitude  *float64   `gorm:"column:shop_latitude" json:"shop_latitude,omitempty"`
	ShopLongitude *float64   `gorm:"column:shop_longitude" json:"shop_longitude,omitempty"`
	ShopWebsite   *string    `gorm:"column:shop_website;size:255" json:"shop_website,omitempty"`
	ShopCreatedBy *uuid.UUID `gorm:"column:shop_created_by;type:uuid" json:"shop_created_by,omitempty"`
	ShopCreatedAt time.Time  `gorm:"column:shop_created_at;autoCreateTime" json:"shop_created_at"`
	ShopUpdatedAt time.Time  `gorm:"column:shop_updated_at;autoUpdateTime" json:"shop_updated_at"`
}

func (ShopModel) TableName() string { return "shops" }

func (m *ShopModel) BeforeCreate(*gorm.DB) error {
	if m.ShopID == uuid.Nil {
		m.ShopID = uuid.New()
	}
	return nil
}
