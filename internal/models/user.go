// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Age          int       `gorm:"not null" json:"age"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Username     *string   `gorm:"uniqueIndex" json:"username,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Images        []Image        `gorm:"foreignKey:UserID" json:"images,omitempty"`
	Threads       []Thread       `gorm:"foreignKey:UserID" json:"threads,omitempty"`
	Contributions []Contribution `gorm:"foreignKey:UserID" json:"contributions,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// DisplayName returns the user's full name for rendering.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
