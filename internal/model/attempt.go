package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one exam-taking session. The id is an opaque UUID assigned at creation.
// Answers, marks and position are full snapshots written by the in-progress client;
// score fields are populated exactly once on submission.
type Attempt struct {
	ID                   string         `gorm:"type:uuid;primarykey" json:"id"`
	UserID               uint           `json:"user_id" gorm:"not null;index"`
	TestID               uint           `json:"test_id" gorm:"not null;index"`
	Test                 Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StartedAt            *time.Time     `json:"started_at,omitempty"`
	SubmittedAt          *time.Time     `json:"submitted_at,omitempty"`
	Score                *int           `json:"score,omitempty"`
	TotalQuestions       int            `json:"total_questions"`
	Percentage           *float64       `json:"percentage,omitempty"`
	Answers              AnswerMap      `json:"answers" gorm:"type:jsonb"`
	MarkedQuestions      StringList     `json:"marked_questions" gorm:"type:jsonb"`
	VisitedQuestions     StringList     `json:"visited_questions" gorm:"type:jsonb"`
	CurrentQuestionIndex int            `json:"current_question_index" gorm:"default:0"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
