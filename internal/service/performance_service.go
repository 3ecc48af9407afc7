package service

import (
	"fmt"
	"strconv"

	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/rs/zerolog/log"
)

const recentAttemptsShown = 5

type PerformanceService interface {
	GetPerformance(userID uint) (*dto.PerformanceDTO, error)
}

type performanceService struct {
	attemptRepo repository.AttemptRepository
}

func NewPerformanceService(attemptRepo repository.AttemptRepository) PerformanceService {
	return &performanceService{attemptRepo: attemptRepo}
}

func (s *performanceService) GetPerformance(userID uint) (*dto.PerformanceDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load attempts for performance stats")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	perf := dto.PerformanceDTO{TotalAttempts: len(attempts)}
	sum := 0.0
	for _, a := range attempts {
		if a.SubmittedAt == nil {
			continue
		}
		perf.CompletedAttempts++
		if a.Percentage != nil {
			sum += *a.Percentage
			if *a.Percentage > perf.BestPercentage {
				perf.BestPercentage = *a.Percentage
			}
		}
		if a.Score != nil && *a.Score > perf.BestScore {
			perf.BestScore = *a.Score
		}
	}
	if perf.CompletedAttempts > 0 {
		perf.AveragePercentage = round2(sum / float64(perf.CompletedAttempts))
	}

	for i, a := range attempts {
		if i >= recentAttemptsShown {
			break
		}
		perf.RecentAttempts = append(perf.RecentAttempts, dto.AttemptSummaryDTO{
			AttemptID:      a.ID,
			TestID:         strconv.FormatUint(uint64(a.TestID), 10),
			TestTitle:      a.Test.Title,
			StartedAt:      a.StartedAt,
			SubmittedAt:    a.SubmittedAt,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     a.Percentage,
		})
	}
	return &perf, nil
}
