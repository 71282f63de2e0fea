// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// RelationStatus represents the status of a connection request between two users.
type RelationStatus string

const (
	// RelationStatusPending indicates a connection request awaiting a response.
	RelationStatusPending RelationStatus = "pending"
	// RelationStatusAccepted indicates an accepted connection.
	RelationStatusAccepted RelationStatus = "accepted"
	// RelationStatusRejected indicates a rejected connection request.
	RelationStatusRejected RelationStatus = "rejected"
)

// Relation is a directed link between two users carrying a request status.
// It is the canonical form of the connection/follow concept.
type Relation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RequesterID uint           `gorm:"not null;uniqueIndex:idx_relation_users" json:"requester_id"`
	AddresseeID uint           `gorm:"not null;uniqueIndex:idx_relation_users" json:"addressee_id"`
	Status      RelationStatus `gorm:"type:varchar(20);default:'pending';index:idx_relations_status" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Relation) TableName() string {
	return "relations"
}
