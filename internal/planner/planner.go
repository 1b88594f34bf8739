package planner

import (
	"math"
	"sort"
	"time"

	"github.com/example/hanbot/pkg/models"
)

// Session size bounds regardless of the time budget
const (
	MinSessionSize = 5
	MaxSessionSize = 30
)

// Estimated seconds a single review takes, by item difficulty
var reviewSeconds = map[models.Difficulty]float64{
	models.DifficultyEasy:     3,
	models.DifficultyMedium:   5,
	models.DifficultyHard:     8,
	models.DifficultyVeryHard: 12,
}

// Share of a mixed session filled from the due pool; the remainder is new items
const mixedDueShare = 0.7

// Minutes reported per selected item when estimating session length
const minutesPerItem = 0.75

// DueItems returns the records due at the given time, earliest-overdue
// first. The sort is stable so ties keep their collection order.
func DueItems(records []models.ReviewRecord, now time.Time) []models.ReviewRecord {
	var due []models.ReviewRecord
	for _, record := range records {
		if record.IsDue(now) {
			due = append(due, record)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})
	return due
}

// NewItems returns up to limit records that have never been successfully
// reviewed, in collection order.
func NewItems(records []models.ReviewRecord, limit int) []models.ReviewRecord {
	var fresh []models.ReviewRecord
	for _, record := range records {
		if record.Repetitions == 0 {
			fresh = append(fresh, record)
			if len(fresh) == limit {
				break
			}
		}
	}
	return fresh
}

// OptimalSessionSize estimates how many items fit in a time budget. The
// per-item cost is the difficulty-weighted average review time over the
// collection; the result is clamped to [MinSessionSize, MaxSessionSize].
func OptimalSessionSize(records []models.ReviewRecord, targetMinutes int) int {
	avgSeconds := reviewSeconds[models.DifficultyMedium]
	if len(records) > 0 {
		var total float64
		for _, record := range records {
			total += reviewSeconds[record.ComputeDifficulty()]
		}
		avgSeconds = total / float64(len(records))
	}

	size := int(float64(targetMinutes) * 60 / avgSeconds)
	if size < MinSessionSize {
		size = MinSessionSize
	}
	if size > MaxSessionSize {
		size = MaxSessionSize
	}
	return size
}

// Plan builds a study session sized to the time budget. Mixed sessions
// draw roughly 70% from the due pool and 30% from the new pool; the other
// modes draw entirely from their own pool.
func Plan(records []models.ReviewRecord, now time.Time, targetMinutes int, mode models.SessionType) models.StudySession {
	size := OptimalSessionSize(records, targetMinutes)

	var ids []string
	seen := make(map[string]bool)
	take := func(pool []models.ReviewRecord, limit int) {
		for _, record := range pool {
			if limit == 0 {
				return
			}
			if seen[record.ItemID] {
				continue
			}
			seen[record.ItemID] = true
			ids = append(ids, record.ItemID)
			limit--
		}
	}

	switch mode {
	case models.SessionReview:
		take(DueItems(records, now), size)
	case models.SessionNewWords:
		take(NewItems(records, size), size)
	default:
		dueCount := int(float64(size) * mixedDueShare)
		take(DueItems(records, now), dueCount)
		take(NewItems(records, size-len(ids)), size-len(ids))
	}

	return models.StudySession{
		WordIDs:       ids,
		EstimatedTime: int(math.Ceil(float64(len(ids)) * minutesPerItem)),
		SessionType:   mode,
	}
}
