package repository

import (
	"github.com/quizforge/mocktest/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByIDForUser(id string, userID uint) (*model.Attempt, error)
	FindAllByUser(userID uint) ([]model.Attempt, error)
	Update(attempt *model.Attempt) error
	LeaderboardRows() ([]LeaderboardRow, error)
	UserStats(userID uint) (*LeaderboardRow, error)
}

// LeaderboardRow is one user's aggregate over submitted attempts.
type LeaderboardRow struct {
	UserID            uint
	UserName          string
	UserEmail         string
	TotalAttempts     int
	AveragePercentage float64
	BestPercentage    float64
	BestScore         int
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByIDForUser(id string, userID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Test").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Test").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}

const leaderboardSelect = `
SELECT a.user_id,
       u.name AS user_name,
       u.email AS user_email,
       COUNT(a.id) AS total_attempts,
       AVG(a.percentage) AS average_percentage,
       MAX(a.percentage) AS best_percentage,
       MAX(a.score) AS best_score
FROM attempts a
JOIN users u ON u.id = a.user_id
WHERE a.submitted_at IS NOT NULL AND a.deleted_at IS NULL
`

func (r *attemptRepository) LeaderboardRows() ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.Raw(leaderboardSelect + `
GROUP BY a.user_id, u.name, u.email
ORDER BY average_percentage DESC, best_percentage DESC`).Scan(&rows).Error
	return rows, err
}

func (r *attemptRepository) UserStats(userID uint) (*LeaderboardRow, error) {
	var row LeaderboardRow
	err := r.db.Raw(leaderboardSelect+`
AND a.user_id = ?
GROUP BY a.user_id, u.name, u.email`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.UserID == 0 {
		return nil, nil // no submitted attempts yet
	}
	return &row, nil
}
