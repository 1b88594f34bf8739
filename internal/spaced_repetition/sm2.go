package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/hanbot/pkg/models"
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Responses at or above this quality count as a successful recall
	PassThreshold int
	// Easiness factor assigned to newly scheduled items
	InitialEaseFactor float64
	// Lower bound for the easiness factor
	MinEaseFactor float64
}

// NewSM2 creates a new SM2 instance with default settings
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:     3,
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// Initialize creates the scheduling state for an item seen for the first
// time. The item is immediately due.
func (sm *SM2) Initialize(itemID string, now time.Time) models.ReviewRecord {
	record := models.ReviewRecord{
		ItemID:     itemID,
		EaseFactor: sm.InitialEaseFactor,
		Interval:   1,
		DueDate:    now,
	}
	record.Difficulty = record.ComputeDifficulty()
	return record
}

// ProcessReview applies the SM-2 algorithm to a review attempt and returns
// the updated record. The input record is not mutated. The function is
// total: out-of-range quality values are clamped into 0-5, never rejected.
//
// Quality is authoritative for the interval branch while WasCorrect drives
// the accuracy counters, so a caller may report a hesitant-but-correct
// answer as correct without granting it a long interval.
func (sm *SM2) ProcessReview(record models.ReviewRecord, response models.ReviewResponse, now time.Time) models.ReviewRecord {
	quality := clampQuality(response.Quality)

	record.TotalReviews++
	record.LastReviewed = now

	if response.WasCorrect {
		record.CorrectReviews++
		record.Streak++
	} else {
		record.Streak = 0
		record.Repetitions = 0
	}

	if quality >= sm.PassThreshold {
		// Successful recall: the first two repetitions use fixed intervals
		// because EF compounding is unreliable with little history; from the
		// third on the multiplicative growth takes over.
		switch {
		case record.Repetitions == 0:
			record.Interval = 1
		case record.Repetitions == 1:
			record.Interval = 6
		default:
			record.Interval = int(math.Round(float64(record.Interval) * record.EaseFactor))
		}
		record.Repetitions++
	} else {
		// Failed recall: start over from a daily interval
		record.Repetitions = 0
		record.Interval = 1
	}
	if record.Interval < 1 {
		record.Interval = 1
	}

	// EF update applies on both branches, clamped at the floor with no ceiling
	q := float64(quality)
	newEF := record.EaseFactor + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
	if newEF < sm.MinEaseFactor {
		newEF = sm.MinEaseFactor
	}
	record.EaseFactor = newEF

	record.DueDate = now.AddDate(0, 0, record.Interval)
	record.Difficulty = record.ComputeDifficulty()

	return record
}

func clampQuality(quality int) int {
	if quality < int(QualityBlackout) {
		return int(QualityBlackout)
	}
	if quality > int(QualityPerfect) {
		return int(QualityPerfect)
	}
	return quality
}
