package models

import "time"

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:32"`
	Provider   string `gorm:"not null;size:32;uniqueIndex:idx_provider_identity"`
	ProviderID string `gorm:"not null;size:64;uniqueIndex:idx_provider_identity"`
	Email      string `gorm:"uniqueIndex;not null;size:255"`
	Username   string `gorm:"not null;size:100"`
	AvatarURL  string `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
