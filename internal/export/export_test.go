package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hanbot/pkg/models"
)

func sampleRecords() []models.ReviewRecord {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.ReviewRecord{
		{
			ItemID:         "word-1",
			EaseFactor:     2.5,
			Interval:       6,
			Repetitions:    2,
			DueDate:        now.AddDate(0, 0, 6),
			LastReviewed:   now,
			TotalReviews:   4,
			CorrectReviews: 3,
			Streak:         2,
			Difficulty:     models.DifficultyMedium,
		},
		{
			ItemID:     "word-2",
			EaseFactor: 1.3,
			Interval:   1,
			DueDate:    now,
			Difficulty: models.DifficultyHard,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	records := sampleRecords()
	now := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	data, err := Export(records, now)
	require.NoError(t, err)

	restored, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, records, restored)
}

func TestExport_Envelope(t *testing.T) {
	now := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	data, err := Export(sampleRecords(), now)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &envelope))

	assert.Equal(t, "1.0", envelope["version"])
	assert.Equal(t, "2024-03-02T08:00:00Z", envelope["export_date"])
	assert.Len(t, envelope["records"], 2)
}

func TestImport_SkipsMalformedRecords(t *testing.T) {
	payload := `{
		"version": "1.0",
		"export_date": "2024-03-02T08:00:00Z",
		"records": [
			{"item_id": "", "ease_factor": 2.5, "interval": 1, "due_date": "2024-03-01T12:00:00Z"},
			{"item_id": "good", "ease_factor": 2.5, "interval": 1, "due_date": "2024-03-01T12:00:00Z"},
			{"item_id": "bad-date", "ease_factor": 2.5, "interval": 1, "due_date": "yesterday"},
			{"item_id": "no-date", "ease_factor": 2.5, "interval": 1}
		]
	}`

	records, err := Import([]byte(payload))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].ItemID)
}

func TestImport_MissingEnvelopeFields(t *testing.T) {
	for _, payload := range []string{
		`{}`,
		`{"records": [{"item_id": "a", "due_date": "2024-03-01T12:00:00Z"}]}`,
		`{"version": "1.0"}`,
	} {
		records, err := Import([]byte(payload))
		require.NoError(t, err, "payload %s", payload)
		assert.Empty(t, records, "payload %s", payload)
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	_, err := Import([]byte("not json"))
	assert.Error(t, err)
}

func TestExport_EmptyCollection(t *testing.T) {
	data, err := Export(nil, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	records, err := Import(data)
	require.NoError(t, err)
	assert.Empty(t, records)
}
