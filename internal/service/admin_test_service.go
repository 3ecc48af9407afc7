package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/model"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	orderMap := make(map[int]bool)
	var questionsToCreate []model.Question

	for _, qDto := range req.Questions {
		if _, exists := orderMap[qDto.OrderInTest]; exists {
			return nil, fmt.Errorf("duplicate orderInTest %d found in questions", qDto.OrderInTest)
		}
		orderMap[qDto.OrderInTest] = true

		if qDto.CorrectAnswer < 0 || qDto.CorrectAnswer >= len(qDto.Options) {
			return nil, fmt.Errorf("correctAnswer %d out of range for question %d with %d options",
				qDto.CorrectAnswer, qDto.OrderInTest, len(qDto.Options))
		}

		questionsToCreate = append(questionsToCreate, model.Question{
			Text:          qDto.Text,
			Options:       model.StringList(qDto.Options),
			CorrectAnswer: qDto.CorrectAnswer,
			OrderInTest:   qDto.OrderInTest,
		})
	}

	testModel := model.Test{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Instructions:    model.StringList(req.Instructions),
		Questions:       questionsToCreate,
	}

	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	createdTest, err := s.testRepo.FindByIDWithQuestions(testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to reload newly created test for response")
		var fallbackResp dto.TestResponseDTO
		copier.Copy(&fallbackResp, &testModel)
		return &fallbackResp, nil
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, createdTest); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
