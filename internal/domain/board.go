package domain

import "time"

// Post, Comment and TempPost all carry UserID as the owner column. It is
// stamped from the authenticated identity at creation and never reassigned.

type Post struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement" json:"post_id"`
	Title     string    `gorm:"not null" json:"title"`
	Contents  string    `gorm:"type:text;not null" json:"contents"`
	Type      string    `gorm:"index" json:"type"`
	ViewCount int64     `json:"view_count"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string { return "post" }

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"comment_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string { return "comment" }

type TempPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Contents  string    `gorm:"type:text;not null" json:"contents"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TempPost) TableName() string { return "temp_post" }
