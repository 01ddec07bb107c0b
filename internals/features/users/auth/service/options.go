package service

import (
	"time"

	"stogie_backend/internals/configs"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

// Options carries the secrets and lifetimes every auth flow needs.
type Options struct {
	JWTSecret      string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	GoogleClientID string
	CookieSecure   bool
}

func OptionsFromConfig(cfg *configs.Config) Options {
	o := Options{
		JWTSecret:      cfg.JWTSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTL:      cfg.AccessTTL,
		RefreshTTL:     cfg.RefreshTTL,
		GoogleClientID: cfg.GoogleClientID,
		CookieSecure:   cfg.CookieSecure,
	}
	if o.AccessTTL <= 0 {
		o.AccessTTL = accessTTLDefault
	}
	if o.RefreshTTL <= 0 {
		o.RefreshTTL = refreshTTLDefault
	}
	return o
}
