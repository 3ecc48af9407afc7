package repository

import (
	"github.com/quizforge/mocktest/internal/model"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	ExistsByUserAndTest(userID, testID uint) (bool, error)
	FindAllByUser(userID uint) ([]model.Purchase, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) ExistsByUserAndTest(userID, testID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) FindAllByUser(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.
		Preload("Test").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
