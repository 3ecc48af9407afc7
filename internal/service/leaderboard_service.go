package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/quizforge/mocktest/pkg/cache"
	"github.com/rs/zerolog/log"
)

const (
	leaderboardCacheKey     = "leaderboard:v1"
	leaderboardCacheTTL     = 60 * time.Second
	defaultLeaderboardLimit = 10
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int, userID uint) (*dto.LeaderboardDTO, error)
}

type leaderboardService struct {
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	redis       *cache.RedisClient // nil disables caching
}

func NewLeaderboardService(attemptRepo repository.AttemptRepository, userRepo repository.UserRepository, redis *cache.RedisClient) LeaderboardService {
	return &leaderboardService{attemptRepo: attemptRepo, userRepo: userRepo, redis: redis}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int, userID uint) (*dto.LeaderboardDTO, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	rows, err := s.loadRows(ctx)
	if err != nil {
		return nil, err
	}

	top := make([]dto.LeaderboardEntryDTO, 0, limit)
	userStats := dto.LeaderboardUserStatsDTO{}
	for i, row := range rows {
		rank := i + 1
		if rank <= limit {
			top = append(top, dto.LeaderboardEntryDTO{
				Rank:              rank,
				UserID:            row.UserID,
				UserName:          row.UserName,
				UserEmail:         row.UserEmail,
				TotalAttempts:     row.TotalAttempts,
				AveragePercentage: round2(row.AveragePercentage),
				BestPercentage:    row.BestPercentage,
				BestScore:         row.BestScore,
			})
		}
		if row.UserID == userID {
			r := rank
			userStats = dto.LeaderboardUserStatsDTO{
				Rank:              &r,
				UserName:          row.UserName,
				TotalAttempts:     row.TotalAttempts,
				AveragePercentage: round2(row.AveragePercentage),
				BestPercentage:    row.BestPercentage,
				BestScore:         row.BestScore,
			}
		}
	}

	if userStats.Rank == nil {
		// Caller has no submitted attempts; still report their name.
		if user, err := s.userRepo.FindByID(userID); err == nil {
			userStats.UserName = user.Name
		}
	}

	return &dto.LeaderboardDTO{
		TopPerformers: top,
		UserStats:     userStats,
		TotalUsers:    len(rows),
	}, nil
}

func (s *leaderboardService) loadRows(ctx context.Context) ([]repository.LeaderboardRow, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, leaderboardCacheKey)
		if err == nil {
			var rows []repository.LeaderboardRow
			if jsonErr := json.Unmarshal([]byte(cached), &rows); jsonErr == nil {
				return rows, nil
			}
		} else if !cache.IsNil(err) {
			log.Warn().Err(err).Msg("Leaderboard cache read failed, falling back to database")
		}
	}

	rows, err := s.attemptRepo.LeaderboardRows()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute leaderboard from database")
		return nil, fmt.Errorf("error computing leaderboard: %w", err)
	}

	if s.redis != nil {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.redis.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL); err != nil {
				log.Warn().Err(err).Msg("Leaderboard cache write failed")
			}
		}
	}
	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
