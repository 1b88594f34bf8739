package database

import (
	"database/sql"
	"fmt"

	"github.com/example/hanbot/pkg/models"
)

// WordRepository handles database operations for vocabulary entries
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetByID returns a word by its id
func (r *WordRepository) GetByID(id string) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}

// GetByHanzi returns a word by its written form and language, or nil when
// it is not in the collection yet.
func (r *WordRepository) GetByHanzi(hanzi, language string) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE hanzi = $1 AND language = $2", hanzi, language)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by hanzi: %v", err)
	}
	return &word, nil
}

// GetAll returns every word in the collection
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	_, err := DB.Exec(`
		INSERT INTO words (id, hanzi, pinyin, translation, example, language)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, word.ID, word.Hanzi, word.Pinyin, word.Translation, word.Example, word.Language)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	return DB.QueryRow("SELECT created_at, updated_at FROM words WHERE id = $1", word.ID).
		Scan(&word.CreatedAt, &word.UpdatedAt)
}

// Update modifies an existing word
func (r *WordRepository) Update(word *models.Word) error {
	_, err := DB.Exec(`
		UPDATE words SET
			hanzi = $1,
			pinyin = $2,
			translation = $3,
			example = $4,
			language = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`, word.Hanzi, word.Pinyin, word.Translation, word.Example, word.Language, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	return nil
}

// Delete removes a word and its review record
func (r *WordRepository) Delete(id string) error {
	if _, err := DB.Exec("DELETE FROM review_records WHERE item_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete review record: %v", err)
	}
	if _, err := DB.Exec("DELETE FROM words WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}
