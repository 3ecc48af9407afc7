package service_test

import (
	"context"
	"testing"

	"github.com/quizforge/mocktest/internal/model"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/quizforge/mocktest/internal/service"
	"gorm.io/gorm"
)

type fakeRankedRepo struct {
	fakeAttemptRepo
	rows []repository.LeaderboardRow
}

func (r *fakeRankedRepo) LeaderboardRows() ([]repository.LeaderboardRow, error) {
	return r.rows, nil
}

type fakeUserRepo struct {
	users map[uint]model.User
}

func (r *fakeUserRepo) Create(u *model.User) error { return nil }

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func rankedRows() []repository.LeaderboardRow {
	return []repository.LeaderboardRow{
		{UserID: 3, UserName: "Asha", UserEmail: "asha@example.com", TotalAttempts: 5, AveragePercentage: 91.333, BestPercentage: 98, BestScore: 49},
		{UserID: 1, UserName: "Binh", UserEmail: "binh@example.com", TotalAttempts: 2, AveragePercentage: 75.5, BestPercentage: 80, BestScore: 40},
		{UserID: 9, UserName: "Chidi", UserEmail: "chidi@example.com", TotalAttempts: 8, AveragePercentage: 60.0, BestPercentage: 72, BestScore: 36},
	}
}

func TestGetLeaderboardRanksAndLimits(t *testing.T) {
	repo := &fakeRankedRepo{rows: rankedRows()}
	users := &fakeUserRepo{users: map[uint]model.User{}}
	svc := service.NewLeaderboardService(repo, users, nil)

	board, err := svc.GetLeaderboard(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	if len(board.TopPerformers) != 2 {
		t.Fatalf("top performers = %d, want 2", len(board.TopPerformers))
	}
	if board.TopPerformers[0].UserID != 3 || board.TopPerformers[0].Rank != 1 {
		t.Fatalf("first entry = %+v", board.TopPerformers[0])
	}
	if board.TopPerformers[0].AveragePercentage != 91.33 {
		t.Fatalf("average not rounded: %v", board.TopPerformers[0].AveragePercentage)
	}
	if board.TotalUsers != 3 {
		t.Fatalf("totalUsers = %d, want 3", board.TotalUsers)
	}

	if board.UserStats.Rank == nil || *board.UserStats.Rank != 2 {
		t.Fatalf("userStats = %+v, want rank 2", board.UserStats)
	}
}

func TestGetLeaderboardUserBeyondLimitStillRanked(t *testing.T) {
	repo := &fakeRankedRepo{rows: rankedRows()}
	users := &fakeUserRepo{users: map[uint]model.User{}}
	svc := service.NewLeaderboardService(repo, users, nil)

	board, err := svc.GetLeaderboard(context.Background(), 1, 9)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(board.TopPerformers) != 1 {
		t.Fatalf("top performers = %d, want 1", len(board.TopPerformers))
	}
	if board.UserStats.Rank == nil || *board.UserStats.Rank != 3 {
		t.Fatalf("userStats = %+v, want rank 3", board.UserStats)
	}
}

func TestGetLeaderboardUserWithoutAttempts(t *testing.T) {
	repo := &fakeRankedRepo{rows: rankedRows()}
	users := &fakeUserRepo{users: map[uint]model.User{42: {Name: "Dana", Email: "dana@example.com"}}}
	svc := service.NewLeaderboardService(repo, users, nil)

	board, err := svc.GetLeaderboard(context.Background(), 10, 42)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if board.UserStats.Rank != nil {
		t.Fatalf("rank = %v, want nil for user with no submitted attempts", *board.UserStats.Rank)
	}
	if board.UserStats.UserName != "Dana" {
		t.Fatalf("userName = %q, want Dana", board.UserStats.UserName)
	}
}
