package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const blacklistTable = "token_blacklist"

// HashToken returns HMAC-SHA256(raw, secret) as hex. Raw tokens are never stored.
func HashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

type blacklistRow struct {
	Token     string    `gorm:"column:token"`
	ExpiredAt time.Time `gorm:"column:expired_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Add blacklists rawAccessToken until expiresAt. Re-adding refreshes the expiry.
func Add(ctx context.Context, db *gorm.DB, rawAccessToken, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || secret == "" {
		return nil
	}
	row := blacklistRow{
		Token:     HashToken(rawAccessToken, secret),
		ExpiredAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Table(blacklistTable).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&row).Error
}

// IsBlacklisted reports whether an unexpired entry exists for rawAccessToken.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || secret == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).Table(blacklistTable).
		Where("token = ? AND expired_at > ?", HashToken(rawAccessToken, secret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired hard-deletes entries whose token would have expired anyway.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Table(blacklistTable).
		Where("expired_at <= ?", time.Now().UTC()).
		Delete(&blacklistRow{})
	return res.RowsAffected, res.Error
}
