package domain

import "time"

// DailyStats is the per-user, per-day usage counter. It is mutated only
// through an idempotent upsert-and-increment keyed by (user, date).
type DailyStats struct {
	UserID           string    `json:"user_id"           db:"user_id"`
	StatDate         time.Time `json:"stat_date"         db:"stat_date"`
	StudyMinutes     int       `json:"study_minutes"     db:"study_minutes"`
	CoursesCompleted int       `json:"courses_completed" db:"courses_completed"`
}

// Study-minute deltas credited per action type. These are coarse proxies
// for engagement time, not measured durations.
const (
	MinutesPerChatTurn       = 2
	MinutesPerGeneration     = 5
	MinutesPerInterviewStart = 15
)
