package mastery

import (
	"time"

	"github.com/example/hanbot/pkg/models"
)

// Thresholds for graduating an item to the mastered level
const (
	masteredRepetitions = 3
	masteredEaseFactor  = 2.0
	learningRepetitions = 3
)

// Classify derives the mastery level of a single item from its scheduling
// state: new items have no successful history, learning items are inside
// the cold-start window, mastered items have graduated with a comfortable
// ease factor, and everything else is in plain review rotation.
func Classify(record models.ReviewRecord) models.MasteryLevel {
	switch {
	case record.Repetitions == 0:
		return models.MasteryNew
	case record.Repetitions < learningRepetitions:
		return models.MasteryLearning
	case record.EaseFactor >= masteredEaseFactor:
		return models.MasteryMastered
	default:
		return models.MasteryReview
	}
}

// CollectionStats summarizes a learner's whole record set
type CollectionStats struct {
	TotalWords             int                         `json:"total_words"`
	DueWords               int                         `json:"due_words"`
	MasteredWords          int                         `json:"mastered_words"`
	AverageAccuracy        float64                     `json:"average_accuracy"`
	AverageEaseFactor      float64                     `json:"average_ease_factor"`
	DifficultyDistribution map[models.Difficulty]int   `json:"difficulty_distribution"`
	MasteryDistribution    map[models.MasteryLevel]int `json:"mastery_distribution"`
}

// Stats reduces a record collection to aggregate numbers. The due count is
// taken against the caller-supplied now so the reduction stays deterministic.
func Stats(records []models.ReviewRecord, now time.Time) CollectionStats {
	stats := CollectionStats{
		TotalWords:             len(records),
		DifficultyDistribution: make(map[models.Difficulty]int),
		MasteryDistribution:    make(map[models.MasteryLevel]int),
	}
	if len(records) == 0 {
		return stats
	}

	var sumAccuracy, sumEase float64
	for _, record := range records {
		if record.IsDue(now) {
			stats.DueWords++
		}
		level := Classify(record)
		if level == models.MasteryMastered {
			stats.MasteredWords++
		}
		stats.MasteryDistribution[level]++
		stats.DifficultyDistribution[record.ComputeDifficulty()]++
		sumAccuracy += record.Accuracy()
		sumEase += record.EaseFactor
	}

	stats.AverageAccuracy = sumAccuracy / float64(len(records))
	stats.AverageEaseFactor = sumEase / float64(len(records))
	return stats
}
