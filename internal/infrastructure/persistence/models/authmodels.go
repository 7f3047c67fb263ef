package models

import "time"

// OAuthStateModel persists pending anti-CSRF state nonces.
type OAuthStateModel struct {
	Token     string `gorm:"primarykey;size:64"`
	ReturnTo  string `gorm:"size:500"`
	CreatedAt time.Time
}

func (OAuthStateModel) TableName() string {
	return "oauth_states"
}

// RefreshTokenModel persists long-lived refresh tokens. Rows cascade
// away with their owning user.
type RefreshTokenModel struct {
	Token     string     `gorm:"primarykey;size:80"`
	UserID    uint       `gorm:"not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ExchangeCodeModel persists one-time exchange codes. Rows cascade away
// with their owning user.
type ExchangeCodeModel struct {
	Code      string     `gorm:"primarykey;size:64"`
	UserID    uint       `gorm:"not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (ExchangeCodeModel) TableName() string {
	return "exchange_codes"
}
