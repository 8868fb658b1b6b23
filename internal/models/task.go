package models

import (
	"time"
)

// Task carries no user reference. Ownership is always derived through the
// parent project so it cannot drift out of sync.
type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	ProjectID   uint64    `gorm:"not null;<-:create" json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
