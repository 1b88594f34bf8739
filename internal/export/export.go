package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/hanbot/pkg/models"
)

// FormatVersion identifies the envelope layout
const FormatVersion = "1.0"

// Envelope is the versioned backup format for review records, used for
// backup and cross-device sync. All timestamps travel as RFC 3339 strings.
type Envelope struct {
	Version    string         `json:"version"`
	ExportDate string         `json:"export_date"`
	Records    []exportRecord `json:"records"`
}

// exportRecord is the wire form of a ReviewRecord with string timestamps
type exportRecord struct {
	ItemID         string  `json:"item_id"`
	EaseFactor     float64 `json:"ease_factor"`
	Interval       int     `json:"interval"`
	Repetitions    int     `json:"repetitions"`
	DueDate        string  `json:"due_date"`
	LastReviewed   string  `json:"last_reviewed"`
	TotalReviews   int     `json:"total_reviews"`
	CorrectReviews int     `json:"correct_reviews"`
	Streak         int     `json:"streak"`
	Difficulty     string  `json:"difficulty"`
}

// Export serializes a record collection into the versioned envelope.
// The export date is caller-supplied like every other timestamp.
func Export(records []models.ReviewRecord, now time.Time) ([]byte, error) {
	envelope := Envelope{
		Version:    FormatVersion,
		ExportDate: now.Format(time.RFC3339),
		Records:    make([]exportRecord, 0, len(records)),
	}
	for _, record := range records {
		envelope.Records = append(envelope.Records, toWire(record))
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export envelope: %v", err)
	}
	return data, nil
}

// Import parses an envelope back into review records. A record missing a
// required field or carrying an unparseable timestamp is skipped rather
// than failing the whole batch: losing one record from review history is
// less harmful than discarding a full sync payload. A payload without a
// usable version or records array yields an empty result, not an error.
func Import(data []byte) ([]models.ReviewRecord, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse import payload: %v", err)
	}
	if envelope.Version == "" || envelope.Records == nil {
		return []models.ReviewRecord{}, nil
	}

	records := make([]models.ReviewRecord, 0, len(envelope.Records))
	for _, wire := range envelope.Records {
		record, ok := fromWire(wire)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func toWire(record models.ReviewRecord) exportRecord {
	wire := exportRecord{
		ItemID:         record.ItemID,
		EaseFactor:     record.EaseFactor,
		Interval:       record.Interval,
		Repetitions:    record.Repetitions,
		DueDate:        record.DueDate.Format(time.RFC3339),
		TotalReviews:   record.TotalReviews,
		CorrectReviews: record.CorrectReviews,
		Streak:         record.Streak,
		Difficulty:     string(record.Difficulty),
	}
	if !record.LastReviewed.IsZero() {
		wire.LastReviewed = record.LastReviewed.Format(time.RFC3339)
	}
	return wire
}

func fromWire(wire exportRecord) (models.ReviewRecord, bool) {
	if wire.ItemID == "" || wire.DueDate == "" {
		return models.ReviewRecord{}, false
	}
	dueDate, err := time.Parse(time.RFC3339, wire.DueDate)
	if err != nil {
		return models.ReviewRecord{}, false
	}

	// Never-reviewed records legitimately carry no last-reviewed time
	var lastReviewed time.Time
	if wire.LastReviewed != "" {
		lastReviewed, err = time.Parse(time.RFC3339, wire.LastReviewed)
		if err != nil {
			return models.ReviewRecord{}, false
		}
	}

	record := models.ReviewRecord{
		ItemID:         wire.ItemID,
		EaseFactor:     wire.EaseFactor,
		Interval:       wire.Interval,
		Repetitions:    wire.Repetitions,
		DueDate:        dueDate,
		LastReviewed:   lastReviewed,
		TotalReviews:   wire.TotalReviews,
		CorrectReviews: wire.CorrectReviews,
		Streak:         wire.Streak,
		Difficulty:     models.Difficulty(wire.Difficulty),
	}
	return record, true
}
