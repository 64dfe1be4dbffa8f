// Package storage provides the durable entity store for the mcloud OAuth2
// server core, backed by GORM over SQLite or PostgreSQL.
package storage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a persisted account. The identifier is store-assigned on first
// save and never reassigned; the password column only ever holds a hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Nickname  string    `gorm:"size:64" json:"nickname,omitempty"`
	Email     string    `gorm:"size:128" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Authority is a grantable role or permission. Fields beyond the identifier
// are carried opaquely between request, entity and response.
type Authority struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
}

// Scope is a named OAuth scope.
type Scope struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
}

// AuditEntry records a mutating service operation for later inspection.
type AuditEntry struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Action     string    `gorm:"not null" json:"action"`
	Resource   string    `gorm:"not null" json:"resource"`
	ResourceID string    `gorm:"size:64" json:"resource_id,omitempty"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	Success    bool      `gorm:"not null" json:"success"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for AuditEntry
func (a *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}
