package models

import "time"

// Word represents a vocabulary entry to be learned
type Word struct {
	ID          string    `json:"id" db:"id"`
	Hanzi       string    `json:"hanzi" db:"hanzi"`
	Pinyin      string    `json:"pinyin" db:"pinyin"`
	Translation string    `json:"translation" db:"translation"`
	Example     string    `json:"example" db:"example"`
	Language    string    `json:"language" db:"language"` // BCP-47 tag, e.g. "zh-CN"
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
