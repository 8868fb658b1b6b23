package models

import (
	"time"
)

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      uint64    `gorm:"not null;<-:create" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
