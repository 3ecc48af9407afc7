package model

import (
	"time"

	"gorm.io/gorm"
)

type Purchase struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_test"`
	TestID    uint           `json:"test_id" gorm:"not null;index;uniqueIndex:idx_user_test"`
	Test      Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	PricePaid float64        `json:"price_paid"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
