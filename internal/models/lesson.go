package models

// Lesson is one unit of the gamified curriculum. Lessons form a linear
// chain: NextLessonID names the lesson that passing this one unlocks,
// empty for the last lesson in the chain.
type Lesson struct {
	ID           string `json:"id" example:"understanding-credit"` // Lesson slug
	Title        string `json:"title" example:"Understanding Credit"`
	Progress     int    `json:"progress" example:"0"` // 0-100
	Locked       bool   `json:"locked"`
	XP           int    `json:"xp" example:"100"` // Reward shown in the UI
	NextLessonID string `json:"nextLessonId,omitempty"`
}

// QuizSubmission is one quiz attempt. Answers holds the selected option
// index per question; nil entries are unanswered.
type QuizSubmission struct {
	UserID   string `json:"userId"`
	LessonID string `json:"lessonId" validate:"required"`
	Answers  []*int `json:"answers" validate:"required"`
}

// QuizResult reports a graded attempt. NewPointsTotal is nil when the
// submitting user is unknown to the user store.
type QuizResult struct {
	CorrectCount   int     `json:"correctCount"`
	Total          int     `json:"total"`
	Percent        float64 `json:"percent"`
	Passed         bool    `json:"passed"`
	PointsEarned   int     `json:"pointsEarned"`
	UpdatedLesson  *Lesson `json:"updatedLesson"`
	NewPointsTotal *int    `json:"newPointsTotal"`
}
