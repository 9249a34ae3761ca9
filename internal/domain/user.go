package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Nickname     string    `gorm:"uniqueIndex;not null" json:"nickname"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "board_user" }

// RefreshToken is the one persisted session record a user may hold.
// The unique index on UserID is the storage-level backstop for the
// single-session invariant; replacing a token is delete-then-insert.
type RefreshToken struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID     string    `gorm:"uniqueIndex;not null" json:"user_id"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_token" }
