package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/model"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PurchaseService records test access grants. Payment gateway handling happens
// upstream; by the time this service is called the order is settled.
type PurchaseService interface {
	PurchaseTests(userID uint, testIDs []string) ([]dto.PurchaseDTO, error)
	GetPurchasedTests(userID uint) ([]dto.PurchaseDTO, error)
	CheckPurchase(userID uint, testID string) (*dto.CheckPurchaseDTO, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	testRepo     repository.TestRepository
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, testRepo repository.TestRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo, testRepo: testRepo}
}

func (s *purchaseService) PurchaseTests(userID uint, testIDs []string) ([]dto.PurchaseDTO, error) {
	var purchased []dto.PurchaseDTO
	for _, idStr := range testIDs {
		tid, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return nil, ErrTestNotFound
		}
		test, err := s.testRepo.FindByID(uint(tid))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTestNotFound
			}
			return nil, fmt.Errorf("error fetching test %d: %w", tid, err)
		}

		exists, err := s.purchaseRepo.ExistsByUserAndTest(userID, test.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking purchase: %w", err)
		}
		if exists {
			continue
		}

		purchase := model.Purchase{UserID: userID, TestID: test.ID, PricePaid: test.Price}
		if err := s.purchaseRepo.Create(&purchase); err != nil {
			log.Error().Err(err).Uint("userID", userID).Uint("testID", test.ID).Msg("Failed to record purchase")
			return nil, fmt.Errorf("error recording purchase: %w", err)
		}
		purchased = append(purchased, dto.PurchaseDTO{
			ID:        purchase.ID,
			TestID:    test.ID,
			TestTitle: test.Title,
			PricePaid: purchase.PricePaid,
			CreatedAt: purchase.CreatedAt,
		})
	}
	return purchased, nil
}

func (s *purchaseService) GetPurchasedTests(userID uint) ([]dto.PurchaseDTO, error) {
	purchases, err := s.purchaseRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list purchases")
		return nil, fmt.Errorf("error fetching purchases: %w", err)
	}
	dtos := make([]dto.PurchaseDTO, len(purchases))
	for i, p := range purchases {
		dtos[i] = dto.PurchaseDTO{
			ID:        p.ID,
			TestID:    p.TestID,
			TestTitle: p.Test.Title,
			PricePaid: p.PricePaid,
			CreatedAt: p.CreatedAt,
		}
	}
	return dtos, nil
}

func (s *purchaseService) CheckPurchase(userID uint, testID string) (*dto.CheckPurchaseDTO, error) {
	tid, err := strconv.ParseUint(testID, 10, 32)
	if err != nil {
		return nil, ErrTestNotFound
	}
	exists, err := s.purchaseRepo.ExistsByUserAndTest(userID, uint(tid))
	if err != nil {
		return nil, fmt.Errorf("error checking purchase: %w", err)
	}
	return &dto.CheckPurchaseDTO{IsPurchased: exists}, nil
}
