package models

// QuizResult is persisted and must round-trip through the store
// unchanged. Nothing in the session/catalog core produces or consumes
// it; it is the surface a future scoring feature will write to.
type QuizResult struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Timestamp int64  `json:"date"`
}
