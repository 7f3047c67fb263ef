package models

import (
	"time"

	"gorm.io/datatypes"
)

// StageModel represents the database persistence model for stages.
type StageModel struct {
	ID           uint       `gorm:"primarykey"`
	SID          string     `gorm:"uniqueIndex;not null;size:32"`
	Name         string     `gorm:"not null;size:100"`
	Color        string     `gorm:"not null;size:7"`
	Private      bool       `gorm:"not null;default:false;index"`
	PasswordHash string     `gorm:"size:255"`
	OwnerID      uint       `gorm:"not null;index"`
	Owner        *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (StageModel) TableName() string {
	return "stages"
}

// InviteModel persists private-stage invites.
type InviteModel struct {
	ID        uint        `gorm:"primarykey"`
	SID       string      `gorm:"uniqueIndex;not null;size:32"`
	StageID   uint        `gorm:"not null;uniqueIndex:idx_stage_user"`
	Stage     *StageModel `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE"`
	UserID    uint        `gorm:"not null;uniqueIndex:idx_stage_user;index"`
	User      *UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (InviteModel) TableName() string {
	return "invites"
}

// ChatMessageModel persists stage chat history.
type ChatMessageModel struct {
	ID          uint        `gorm:"primarykey"`
	SID         string      `gorm:"uniqueIndex;not null;size:32"`
	Type        string      `gorm:"not null;size:8"`
	MessageData string      `gorm:"not null;size:512"`
	FileMeta    datatypes.JSON

	StageID     uint        `gorm:"not null;index"`
	Stage       *StageModel `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE"`
	UserID      uint        `gorm:"not null;index"`
	User        *UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
