// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Image is a user-uploaded image post.
type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	URL        string    `gorm:"size:200;not null" json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	Likes      *int      `json:"likes,omitempty"`
	Caption    string    `gorm:"size:600" json:"caption,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Image) TableName() string {
	return "images"
}
