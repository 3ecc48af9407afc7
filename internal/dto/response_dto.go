package dto

import "time"

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponseDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	QuestionCount   int       `json:"questionCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// QuestionPublicDTO is a question as shown to a candidate: no correct answer.
type QuestionPublicDTO struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// TestDetailDTO is the GET /tests/{id} payload.
type TestDetailDTO struct {
	Test      TestSummaryDTO      `json:"test"`
	Questions []QuestionPublicDTO `json:"questions"`
}

// --- Attempt surface (camelCase contract consumed by the session core) ---

// AttemptInfoDTO mirrors the durable attempt record.
type AttemptInfoDTO struct {
	AttemptID            string     `json:"attemptId"`
	TestID               string     `json:"testId"`
	TestTitle            string     `json:"testTitle"`
	DurationMinutes      int        `json:"durationMinutes"`
	StartedAt            *time.Time `json:"startedAt"`
	SubmittedAt          *time.Time `json:"submittedAt"`
	Score                *int       `json:"score,omitempty"`
	TotalQuestions       int        `json:"totalQuestions"`
	Percentage           *float64   `json:"percentage,omitempty"`
	MarkedQuestions      []string   `json:"markedQuestions"`
	VisitedQuestions     []string   `json:"visitedQuestions"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
}

// AttemptQuestionDTO is a question snapshot within an attempt, carrying the
// candidate's saved selection.
type AttemptQuestionDTO struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	SelectedAnswer *int     `json:"selectedAnswer"`
}

// AttemptTestDTO carries optional test metadata alongside an attempt.
type AttemptTestDTO struct {
	Instructions []string `json:"instructions,omitempty"`
}

// AttemptDetailDTO is the GET /attempts/{id} payload.
type AttemptDetailDTO struct {
	Attempt   AttemptInfoDTO       `json:"attempt"`
	Questions []AttemptQuestionDTO `json:"questions"`
	Test      *AttemptTestDTO      `json:"test,omitempty"`
}

type CreateAttemptResponseDTO struct {
	AttemptID string     `json:"attemptId"`
	TestID    string     `json:"testId"`
	StartedAt *time.Time `json:"startedAt"`
}

type StartAttemptResponseDTO struct {
	StartedAt time.Time `json:"startedAt"`
}

// ProgressEchoDTO echoes the updated snapshot fields back to the client.
type ProgressEchoDTO struct {
	AttemptID            string         `json:"attemptId"`
	Answers              map[string]int `json:"answers"`
	MarkedQuestions      []string       `json:"markedQuestions"`
	VisitedQuestions     []string       `json:"visitedQuestions"`
	CurrentQuestionIndex int            `json:"currentQuestionIndex"`
}

type SubmitResultDTO struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

// AttemptSummaryDTO is for listing a user's attempts.
type AttemptSummaryDTO struct {
	AttemptID      string     `json:"attemptId"`
	TestID         string     `json:"testId"`
	TestTitle      string     `json:"testTitle"`
	StartedAt      *time.Time `json:"startedAt"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	Score          *int       `json:"score,omitempty"`
	TotalQuestions int        `json:"totalQuestions"`
	Percentage     *float64   `json:"percentage,omitempty"`
}

// --- Leaderboard & performance ---

type LeaderboardEntryDTO struct {
	Rank              int     `json:"rank"`
	UserID            uint    `json:"userId"`
	UserName          string  `json:"userName"`
	UserEmail         string  `json:"userEmail"`
	TotalAttempts     int     `json:"totalAttempts"`
	AveragePercentage float64 `json:"averagePercentage"`
	BestPercentage    float64 `json:"bestPercentage"`
	BestScore         int     `json:"bestScore"`
}

type LeaderboardUserStatsDTO struct {
	Rank              *int    `json:"rank"`
	UserName          string  `json:"userName"`
	TotalAttempts     int     `json:"totalAttempts"`
	AveragePercentage float64 `json:"averagePercentage"`
	BestPercentage    float64 `json:"bestPercentage"`
	BestScore         int     `json:"bestScore"`
}

type LeaderboardDTO struct {
	TopPerformers []LeaderboardEntryDTO   `json:"topPerformers"`
	UserStats     LeaderboardUserStatsDTO `json:"userStats"`
	TotalUsers    int                     `json:"totalUsers"`
}

type PerformanceDTO struct {
	TotalAttempts     int                 `json:"totalAttempts"`
	CompletedAttempts int                 `json:"completedAttempts"`
	AveragePercentage float64             `json:"averagePercentage"`
	BestPercentage    float64             `json:"bestPercentage"`
	BestScore         int                 `json:"bestScore"`
	RecentAttempts    []AttemptSummaryDTO `json:"recentAttempts"`
}

// --- Purchases ---

type PurchaseDTO struct {
	ID        uint      `json:"id"`
	TestID    uint      `json:"testId"`
	TestTitle string    `json:"testTitle"`
	PricePaid float64   `json:"pricePaid"`
	CreatedAt time.Time `json:"createdAt"`
}

type CheckPurchaseDTO struct {
	IsPurchased bool `json:"isPurchased"`
}

// TestResponseDTO is the admin-facing view of a created test, correct answers included.
type TestResponseDTO struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Category        string                `json:"category,omitempty"`
	Price           float64               `json:"price"`
	DurationMinutes int                   `json:"durationMinutes"`
	Instructions    []string              `json:"instructions,omitempty"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

type QuestionResponseDTO struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"testId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	OrderInTest   int      `json:"orderInTest"`
}
