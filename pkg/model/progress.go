package model

import "time"

// Badge identifiers. A badge is granted at most once.
const (
	BadgeFirstEntry = "first_entry"
	BadgeTenEntries = "ten_entries"
	BadgeWeekStreak = "week_streak"
	BadgeLevelFive  = "level_five"
	BadgeFiveDays   = "five_days"
)

// Progress is the gamification state derived from entry-creation events.
// Invariant after normalization: Points < Level * pointsPerLevel.
type Progress struct {
	Points        int        `json:"points"`
	Level         int        `json:"level"`
	Streak        int        `json:"streak"`
	Badges        []string   `json:"badges"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
	EntryCount    int        `json:"entry_count"`
	// JournaledDays holds YYYY-MM-DD keys for days with at least one entry.
	JournaledDays map[string]bool `json:"journaled_days"`
}

// NewProgress returns first-launch defaults.
func NewProgress() Progress {
	return Progress{
		Points:        0,
		Level:         1,
		Streak:        0,
		Badges:        []string{},
		JournaledDays: map[string]bool{},
	}
}

func (p Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

type ProgressResponse struct {
	Points        int        `json:"points"`
	Level         int        `json:"level"`
	PointsToLevel int        `json:"points_to_level"`
	Streak        int        `json:"streak"`
	Badges        []string   `json:"badges"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
	EntryCount    int        `json:"entry_count"`
}
