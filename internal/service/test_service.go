package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TestService interface {
	GetAllTests(category, search string) ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestDetailDTO, error)
}

type testService struct {
	testRepo repository.TestRepository
}

func NewTestService(testRepo repository.TestRepository) TestService {
	return &testService{testRepo: testRepo}
}

func (s *testService) GetAllTests(category, search string) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount(category, search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	var dtos []dto.TestSummaryDTO
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:              twc.Test.ID,
			Title:           twc.Test.Title,
			Description:     twc.Test.Description,
			Category:        twc.Test.Category,
			Price:           twc.Test.Price,
			DurationMinutes: twc.Test.DurationMinutes,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *testService) GetTestDetails(testID uint) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	questions := make([]dto.QuestionPublicDTO, len(test.Questions))
	for i, q := range test.Questions {
		questions[i] = dto.QuestionPublicDTO{
			ID:      strconv.FormatUint(uint64(q.ID), 10),
			Text:    q.Text,
			Options: q.Options,
		}
	}

	return &dto.TestDetailDTO{
		Test: dto.TestSummaryDTO{
			ID:              test.ID,
			Title:           test.Title,
			Description:     test.Description,
			Category:        test.Category,
			Price:           test.Price,
			DurationMinutes: test.DurationMinutes,
			QuestionCount:   len(test.Questions),
			CreatedAt:       test.CreatedAt,
		},
		Questions: questions,
	}, nil
}
