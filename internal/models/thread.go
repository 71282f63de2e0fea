// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// ThreadVisibility controls who may view a thread.
type ThreadVisibility string

const (
	// ThreadVisibilityPublic makes a thread visible to everyone.
	ThreadVisibilityPublic ThreadVisibility = "public"
	// ThreadVisibilityPrivate restricts a thread to its owner.
	ThreadVisibilityPrivate ThreadVisibility = "private"
)

// ThreadLifecycle controls whether a thread still accepts contributions.
type ThreadLifecycle string

const (
	// ThreadLifecycleLive means the thread accepts contributions.
	ThreadLifecycleLive ThreadLifecycle = "live"
	// ThreadLifecycleClosed means the thread no longer accepts contributions.
	ThreadLifecycleClosed ThreadLifecycle = "closed"
)

// Valid reports whether the visibility is one of the closed set.
func (v ThreadVisibility) Valid() bool {
	return v == ThreadVisibilityPublic || v == ThreadVisibilityPrivate
}

// Valid reports whether the lifecycle is one of the closed set.
func (l ThreadLifecycle) Valid() bool {
	return l == ThreadLifecycleLive || l == ThreadLifecycleClosed
}

// Thread is a user-owned post other users may append contributions to.
type Thread struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	Title            string           `gorm:"size:100;not null" json:"title"`
	Text             string           `gorm:"size:600;not null" json:"text"`
	Visibility       ThreadVisibility `gorm:"type:varchar(10);not null" json:"visibility"`
	Lifecycle        ThreadLifecycle  `gorm:"type:varchar(10);not null" json:"lifecycle"`
	ContributorCount int              `gorm:"not null;default:0" json:"contributor_count"`
	CreatedAt        time.Time        `json:"created_at"`

	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Contributions []Contribution `gorm:"foreignKey:ThreadID" json:"contributions,omitempty"`
}

// TableName specifies the table name for GORM
func (Thread) TableName() string {
	return "owned_threads"
}

// Contribution is a text entry appended by a user to an existing thread.
type Contribution struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ThreadID    uint      `gorm:"not null;index" json:"thread_id"`
	Text        string    `gorm:"size:100;not null" json:"text"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	Likes       *int      `json:"likes,omitempty"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Thread Thread `gorm:"foreignKey:ThreadID" json:"-"`
}

// TableName specifies the table name for GORM
func (Contribution) TableName() string {
	return "contributer_threads"
}
