package domain

import "time"

// Achievement is a definition row, seeded by migration and looked up by name.
type Achievement struct {
	ID          string `json:"id"          db:"id"`
	Name        string `json:"name"        db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon"        db:"icon"`
}

// UserAchievement is an unlock record, created at most once per
// (user, achievement) pair.
type UserAchievement struct {
	UserID        string    `json:"user_id"        db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	Name          string    `json:"name"           db:"name"`
	Description   string    `json:"description"    db:"description"`
	Icon          string    `json:"icon"           db:"icon"`
	UnlockedAt    time.Time `json:"unlocked_at"    db:"unlocked_at"`
}

// Achievement names referenced by the milestone gates.
const (
	AchievementContentCreator  = "Content Creator"
	AchievementInterviewReady  = "Interview Ready"
	AchievementInterviewExpert = "Interview Expert"
)
