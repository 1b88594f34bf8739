package models

import "time"

// Difficulty is a coarse display classification of how hard an item
// currently is. It is derived from the numeric scheduling state and
// recomputed on every update, never stored authoritatively.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very_hard"
)

// ReviewRecord tracks the spaced-repetition state of a single learnable item.
type ReviewRecord struct {
	ItemID         string     `json:"item_id" db:"item_id"`
	EaseFactor     float64    `json:"ease_factor" db:"ease_factor"`         // SM-2 EF parameter, never below 1.3
	Interval       int        `json:"interval" db:"interval"`               // Days until the next review, at least 1
	Repetitions    int        `json:"repetitions" db:"repetitions"`         // Consecutive successful reviews since last failure
	DueDate        time.Time  `json:"due_date" db:"due_date"`
	LastReviewed   time.Time  `json:"last_reviewed" db:"last_reviewed"`
	TotalReviews   int        `json:"total_reviews" db:"total_reviews"`     // Lifetime review count, never reset
	CorrectReviews int        `json:"correct_reviews" db:"correct_reviews"` // Lifetime correct count, never reset
	Streak         int        `json:"streak" db:"streak"`                   // Consecutive correct answers, reset on failure
	Difficulty     Difficulty `json:"difficulty" db:"difficulty"`
}

// Accuracy returns the observed lifetime accuracy of the item, or 0 if it
// has never been reviewed.
func (r ReviewRecord) Accuracy() float64 {
	if r.TotalReviews == 0 {
		return 0
	}
	return float64(r.CorrectReviews) / float64(r.TotalReviews)
}

// ComputeDifficulty derives the display difficulty from the current
// scheduling state. Clauses are evaluated top-down; the first match wins.
func (r ReviewRecord) ComputeDifficulty() Difficulty {
	accuracy := r.Accuracy()

	switch {
	case r.EaseFactor >= 2.2 && r.Streak >= 3 && accuracy >= 0.8:
		return DifficultyEasy
	case r.EaseFactor <= 1.5 || (accuracy < 0.4 && r.TotalReviews >= 3):
		return DifficultyVeryHard
	case r.EaseFactor <= 1.8 || r.Streak == 0 || accuracy < 0.6:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// IsDue reports whether the item is due for review at the given time.
func (r ReviewRecord) IsDue(now time.Time) bool {
	return !r.DueDate.After(now)
}
