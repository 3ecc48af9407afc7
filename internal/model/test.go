package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null;uniqueIndex"` // "SSC CGL Mock Test 1"
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category,omitempty" gorm:"index"`
	Price           float64        `json:"price" gorm:"default:0"` // 0 = free test
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:60"`
	Instructions    StringList     `json:"instructions,omitempty" gorm:"type:jsonb"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
