package model

import "time"

// Progress accumulates the daily check-in counters that feed achievements.
// CapsuleDays and TotalWaterDays only grow; WaterStreak resets when a day is
// skipped.
type Progress struct {
	UserID         string
	CapsuleDays    int
	WaterStreak    int
	TotalWaterDays int
	LastCapsuleAt  *time.Time
	LastWaterAt    *time.Time
	UpdatedAt      time.Time
}

func NewProgress(userID string) *Progress {
	return &Progress{UserID: userID, UpdatedAt: time.Now()}
}

// AchievementStatus pairs a catalog achievement with a user's standing.
type AchievementStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
}
