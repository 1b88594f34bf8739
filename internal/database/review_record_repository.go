package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hanbot/pkg/models"
)

// recordColumns lists the model columns; review_records also carries a
// created_at used only for stable ordering.
const recordColumns = `item_id, ease_factor, interval, repetitions, due_date,
	last_reviewed, total_reviews, correct_reviews, streak, difficulty`

// ReviewRecordRepository handles database operations for review records
type ReviewRecordRepository struct{}

// NewReviewRecordRepository creates a new repository instance
func NewReviewRecordRepository() *ReviewRecordRepository {
	return &ReviewRecordRepository{}
}

// GetByItem returns the review record for a specific item, or a nil record
// with no error when the item has never been scheduled.
func (r *ReviewRecordRepository) GetByItem(itemID string) (*models.ReviewRecord, error) {
	var record models.ReviewRecord
	err := DB.Get(&record, "SELECT "+recordColumns+" FROM review_records WHERE item_id = $1", itemID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review record: %v", err)
	}
	return &record, nil
}

// GetAll returns every review record in insertion order
func (r *ReviewRecordRepository) GetAll() ([]models.ReviewRecord, error) {
	var records []models.ReviewRecord
	err := DB.Select(&records, "SELECT "+recordColumns+" FROM review_records ORDER BY created_at, item_id")
	if err != nil {
		return nil, fmt.Errorf("failed to get review records: %v", err)
	}
	return records, nil
}

// GetDue returns records due at the given time, earliest first. The time
// is caller-supplied so the query stays deterministic under test.
func (r *ReviewRecordRepository) GetDue(now time.Time) ([]models.ReviewRecord, error) {
	var records []models.ReviewRecord
	err := DB.Select(&records, `
		SELECT `+recordColumns+` FROM review_records
		WHERE due_date <= $1
		ORDER BY due_date ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due records: %v", err)
	}
	return records, nil
}

// CountDue returns how many items are due at the given time
func (r *ReviewRecordRepository) CountDue(now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM review_records WHERE due_date <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due records: %v", err)
	}
	return count, nil
}

// Upsert stores a review record, replacing any previous state for the item.
// The engine computes full records, so a plain overwrite is all we need.
func (r *ReviewRecordRepository) Upsert(record *models.ReviewRecord) error {
	_, err := DB.Exec(`
		INSERT INTO review_records (
			item_id, ease_factor, interval, repetitions, due_date,
			last_reviewed, total_reviews, correct_reviews, streak, difficulty
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (item_id) DO UPDATE SET
			ease_factor = EXCLUDED.ease_factor,
			interval = EXCLUDED.interval,
			repetitions = EXCLUDED.repetitions,
			due_date = EXCLUDED.due_date,
			last_reviewed = EXCLUDED.last_reviewed,
			total_reviews = EXCLUDED.total_reviews,
			correct_reviews = EXCLUDED.correct_reviews,
			streak = EXCLUDED.streak,
			difficulty = EXCLUDED.difficulty
	`,
		record.ItemID,
		record.EaseFactor,
		record.Interval,
		record.Repetitions,
		record.DueDate,
		record.LastReviewed,
		record.TotalReviews,
		record.CorrectReviews,
		record.Streak,
		record.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert review record: %v", err)
	}
	return nil
}

// Delete removes the review record for an item
func (r *ReviewRecordRepository) Delete(itemID string) error {
	_, err := DB.Exec("DELETE FROM review_records WHERE item_id = $1", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete review record: %v", err)
	}
	return nil
}

// ReplaceAll swaps the whole record set for an imported one, used when
// restoring a backup envelope.
func (r *ReviewRecordRepository) ReplaceAll(records []models.ReviewRecord) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM review_records"); err != nil {
		return fmt.Errorf("failed to clear review records: %v", err)
	}
	for _, record := range records {
		_, err := tx.Exec(`
			INSERT INTO review_records (
				item_id, ease_factor, interval, repetitions, due_date,
				last_reviewed, total_reviews, correct_reviews, streak, difficulty
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			record.ItemID,
			record.EaseFactor,
			record.Interval,
			record.Repetitions,
			record.DueDate,
			record.LastReviewed,
			record.TotalReviews,
			record.CorrectReviews,
			record.Streak,
			record.Difficulty,
		)
		if err != nil {
			return fmt.Errorf("failed to insert review record %s: %v", record.ItemID, err)
		}
	}

	return tx.Commit()
}
