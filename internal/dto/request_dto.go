package dto

// RegisterRequestDTO is the payload for user registration.
type RegisterRequestDTO struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateAttemptRequestDTO initiates an attempt on a test.
// Test IDs travel as strings on the attempt surface (they are opaque to clients).
type CreateAttemptRequestDTO struct {
	TestID string `json:"testId" binding:"required"`
}

// ProgressUpdateDTO carries full-snapshot progress writes. Every field is
// optional; a present field replaces the stored value entirely.
type ProgressUpdateDTO struct {
	Answers              *map[string]int `json:"answers,omitempty"`
	MarkedQuestions      *[]string       `json:"markedQuestions,omitempty"`
	VisitedQuestions     *[]string       `json:"visitedQuestions,omitempty"`
	CurrentQuestionIndex *int            `json:"currentQuestionIndex,omitempty"`
}

type PurchaseRequestDTO struct {
	TestIDs []string `json:"testIds" binding:"required,min=1"`
}

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,max=6"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
	OrderInTest   int      `json:"orderInTest" binding:"required,min=1"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category,omitempty"`
	Price           float64             `json:"price" binding:"min=0"`
	DurationMinutes int                 `json:"durationMinutes" binding:"required,min=1"`
	Instructions    []string            `json:"instructions,omitempty"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}
