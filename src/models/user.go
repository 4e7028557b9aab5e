package models

import (
	"anc/src/types"
	"time"
)

type User struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Role       string     `gorm:"default:'staff'" json:"role,omitempty"`
	Active     bool       `gorm:"default:true" json:"active"`
	LastActive *time.Time `json:"last_active,omitempty"`

	types.Timestamps
}
