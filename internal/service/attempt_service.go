package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/events"
	"github.com/quizforge/mocktest/internal/model"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the server side of the attempt lifecycle. Start and
// Submit are idempotent: repeated calls return the originally stored result.
type AttemptService interface {
	CreateAttempt(userID uint, testID string) (*dto.CreateAttemptResponseDTO, error)
	GetAttempt(attemptID string, userID uint) (*dto.AttemptDetailDTO, error)
	ListUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error)
	StartAttempt(attemptID string, userID uint) (*dto.StartAttemptResponseDTO, error)
	UpdateProgress(attemptID string, userID uint, req dto.ProgressUpdateDTO) (*dto.ProgressEchoDTO, error)
	SubmitAttempt(ctx context.Context, attemptID string, userID uint) (*dto.SubmitResultDTO, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	testRepo     repository.TestRepository
	purchaseRepo repository.PurchaseRepository
	publisher    events.Publisher
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	testRepo repository.TestRepository,
	purchaseRepo repository.PurchaseRepository,
	publisher events.Publisher,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		testRepo:     testRepo,
		purchaseRepo: purchaseRepo,
		publisher:    publisher,
	}
}

func (s *attemptService) CreateAttempt(userID uint, testID string) (*dto.CreateAttemptResponseDTO, error) {
	tid, err := strconv.ParseUint(testID, 10, 32)
	if err != nil {
		return nil, ErrTestNotFound
	}

	test, err := s.testRepo.FindByIDWithQuestions(uint(tid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %d: %w", tid, err)
	}
	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("test %d has no questions, an attempt is not possible", test.ID)
	}

	if test.Price > 0 {
		purchased, err := s.purchaseRepo.ExistsByUserAndTest(userID, test.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking purchase: %w", err)
		}
		if !purchased {
			return nil, ErrNotPurchased
		}
	}

	attempt := model.Attempt{
		ID:               uuid.NewString(),
		UserID:           userID,
		TestID:           test.ID,
		TotalQuestions:   len(test.Questions),
		Answers:          model.AnswerMap{},
		MarkedQuestions:  model.StringList{},
		VisitedQuestions: model.StringList{},
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("testID", test.ID).Msg("Failed to create attempt")
		return nil, fmt.Errorf("error creating attempt: %w", err)
	}

	return &dto.CreateAttemptResponseDTO{
		AttemptID: attempt.ID,
		TestID:    strconv.FormatUint(uint64(test.ID), 10),
		StartedAt: attempt.StartedAt,
	}, nil
}

func (s *attemptService) GetAttempt(attemptID string, userID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.findOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}

	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for attempt %s: %w", attemptID, err)
	}

	questions := make([]dto.AttemptQuestionDTO, len(test.Questions))
	for i, q := range test.Questions {
		qid := strconv.FormatUint(uint64(q.ID), 10)
		var selected *int
		if idx, ok := attempt.Answers[qid]; ok {
			v := idx
			selected = &v
		}
		questions[i] = dto.AttemptQuestionDTO{
			ID:             qid,
			Text:           q.Text,
			Options:        q.Options,
			SelectedAnswer: selected,
		}
	}

	detail := &dto.AttemptDetailDTO{
		Attempt:   attemptInfoDTO(attempt, test),
		Questions: questions,
	}
	if len(test.Instructions) > 0 {
		detail.Test = &dto.AttemptTestDTO{Instructions: test.Instructions}
	}
	return detail, nil
}

func (s *attemptService) ListUserAttempts(userID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	summaries := make([]dto.AttemptSummaryDTO, len(attempts))
	for i, a := range attempts {
		summaries[i] = dto.AttemptSummaryDTO{
			AttemptID:      a.ID,
			TestID:         strconv.FormatUint(uint64(a.TestID), 10),
			TestTitle:      a.Test.Title,
			StartedAt:      a.StartedAt,
			SubmittedAt:    a.SubmittedAt,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     a.Percentage,
		}
	}
	return summaries, nil
}

// StartAttempt marks the attempt started. The stored timestamp is authoritative:
// a second call returns the original startedAt unchanged.
func (s *attemptService) StartAttempt(attemptID string, userID uint) (*dto.StartAttemptResponseDTO, error) {
	attempt, err := s.findOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.SubmittedAt != nil {
		return nil, ErrAttemptSubmitted
	}
	if attempt.StartedAt != nil {
		return &dto.StartAttemptResponseDTO{StartedAt: *attempt.StartedAt}, nil
	}

	now := time.Now().UTC()
	attempt.StartedAt = &now
	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to mark attempt started")
		return nil, fmt.Errorf("error starting attempt: %w", err)
	}
	return &dto.StartAttemptResponseDTO{StartedAt: now}, nil
}

// UpdateProgress applies a full-snapshot progress write. Present fields replace
// the stored value entirely; absent fields are untouched.
func (s *attemptService) UpdateProgress(attemptID string, userID uint, req dto.ProgressUpdateDTO) (*dto.ProgressEchoDTO, error) {
	attempt, err := s.findOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.SubmittedAt != nil {
		return nil, ErrAttemptSubmitted
	}

	if req.Answers != nil {
		attempt.Answers = model.AnswerMap(*req.Answers)
	}
	if req.MarkedQuestions != nil {
		attempt.MarkedQuestions = model.StringList(*req.MarkedQuestions)
	}
	if req.VisitedQuestions != nil {
		attempt.VisitedQuestions = model.StringList(*req.VisitedQuestions)
	}
	if req.CurrentQuestionIndex != nil {
		idx := *req.CurrentQuestionIndex
		if idx < 0 || (attempt.TotalQuestions > 0 && idx >= attempt.TotalQuestions) {
			return nil, ErrIndexOutOfRange
		}
		attempt.CurrentQuestionIndex = idx
	}

	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to save attempt progress")
		return nil, fmt.Errorf("error saving progress: %w", err)
	}

	return &dto.ProgressEchoDTO{
		AttemptID:            attempt.ID,
		Answers:              attempt.Answers,
		MarkedQuestions:      attempt.MarkedQuestions,
		VisitedQuestions:     attempt.VisitedQuestions,
		CurrentQuestionIndex: attempt.CurrentQuestionIndex,
	}, nil
}

// SubmitAttempt finalizes and scores the attempt. Scoring is deterministic:
// one point per answer matching the question's correct index. Re-submitting a
// finalized attempt returns the stored result.
func (s *attemptService) SubmitAttempt(ctx context.Context, attemptID string, userID uint) (*dto.SubmitResultDTO, error) {
	attempt, err := s.findOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.SubmittedAt != nil {
		score := 0
		if attempt.Score != nil {
			score = *attempt.Score
		}
		percentage := 0.0
		if attempt.Percentage != nil {
			percentage = *attempt.Percentage
		}
		return &dto.SubmitResultDTO{Score: score, TotalQuestions: attempt.TotalQuestions, Percentage: percentage}, nil
	}
	if attempt.StartedAt == nil {
		return nil, ErrAttemptNotStarted
	}

	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for scoring: %w", err)
	}

	score := 0
	for _, q := range test.Questions {
		qid := strconv.FormatUint(uint64(q.ID), 10)
		if selected, ok := attempt.Answers[qid]; ok && selected == q.CorrectAnswer {
			score++
		}
	}
	total := len(test.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(score)/float64(total)*10000) / 100
	}

	now := time.Now().UTC()
	attempt.SubmittedAt = &now
	attempt.Score = &score
	attempt.TotalQuestions = total
	attempt.Percentage = &percentage
	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to finalize attempt")
		return nil, fmt.Errorf("error submitting attempt: %w", err)
	}

	if s.publisher != nil {
		evt := events.AttemptSubmittedEvent{
			AttemptID:      attempt.ID,
			UserID:         attempt.UserID,
			TestID:         attempt.TestID,
			TestTitle:      test.Title,
			Score:          score,
			TotalQuestions: total,
			Percentage:     percentage,
			SubmittedAt:    now,
		}
		if err := s.publisher.PublishAttemptSubmitted(ctx, evt); err != nil {
			log.Warn().Err(err).Str("attemptID", attempt.ID).Msg("Failed to publish attempt.submitted event")
		}
	}

	return &dto.SubmitResultDTO{Score: score, TotalQuestions: total, Percentage: percentage}, nil
}

func (s *attemptService) findOwned(attemptID string, userID uint) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByIDForUser(attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("error fetching attempt %s: %w", attemptID, err)
	}
	return attempt, nil
}

func attemptInfoDTO(a *model.Attempt, test *model.Test) dto.AttemptInfoDTO {
	return dto.AttemptInfoDTO{
		AttemptID:            a.ID,
		TestID:               strconv.FormatUint(uint64(a.TestID), 10),
		TestTitle:            test.Title,
		DurationMinutes:      test.DurationMinutes,
		StartedAt:            a.StartedAt,
		SubmittedAt:          a.SubmittedAt,
		Score:                a.Score,
		TotalQuestions:       a.TotalQuestions,
		Percentage:           a.Percentage,
		MarkedQuestions:      a.MarkedQuestions,
		VisitedQuestions:     a.VisitedQuestions,
		CurrentQuestionIndex: a.CurrentQuestionIndex,
	}
}
