package domain

import (
	"encoding/json"
	"time"
)

// Artifact is a persisted unit of generated output (notes, roadmap,
// timetable, ...) attributable to one user. Artifacts are insert-only:
// they are never updated or deleted by the API.
type Artifact struct {
	ID        string          `json:"id"         db:"id"`
	UserID    string          `json:"user_id"    db:"user_id"`
	Category  string          `json:"category"   db:"category"`
	Topic     string          `json:"topic"      db:"topic"`
	Content   string          `json:"content"    db:"content"`
	Metadata  json.RawMessage `json:"metadata"   db:"metadata"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// InterviewSession records one completed mock interview.
type InterviewSession struct {
	ID         string          `json:"id"         db:"id"`
	UserID     string          `json:"user_id"    db:"user_id"`
	Role       string          `json:"role"       db:"role"`
	Difficulty string          `json:"difficulty" db:"difficulty"`
	Questions  json.RawMessage `json:"questions"  db:"questions"`
	Answers    json.RawMessage `json:"answers"    db:"answers"`
	Feedback   json.RawMessage `json:"feedback"   db:"feedback"`
	Score      int             `json:"score"      db:"score"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
