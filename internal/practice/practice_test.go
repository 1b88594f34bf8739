package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hanbot/internal/spaced_repetition"
	"github.com/example/hanbot/pkg/models"
)

// memoryStore is an in-memory recordStore for tests
type memoryStore struct {
	records map[string]models.ReviewRecord
	order   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]models.ReviewRecord)}
}

func (m *memoryStore) GetByItem(itemID string) (*models.ReviewRecord, error) {
	record, ok := m.records[itemID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *memoryStore) GetAll() ([]models.ReviewRecord, error) {
	out := make([]models.ReviewRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}

func (m *memoryStore) Upsert(record *models.ReviewRecord) error {
	if _, ok := m.records[record.ItemID]; !ok {
		m.order = append(m.order, record.ItemID)
	}
	m.records[record.ItemID] = *record
	return nil
}

func (m *memoryStore) ReplaceAll(records []models.ReviewRecord) error {
	m.records = make(map[string]models.ReviewRecord)
	m.order = nil
	for i := range records {
		if err := m.Upsert(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGradeAttempt_Mapping(t *testing.T) {
	s := NewService(newMemoryStore())

	tests := []struct {
		tier        models.ScoreTier
		accuracy    float64
		wantQuality int
		wantCorrect bool
	}{
		{models.ScoreExcellent, 95, int(spaced_repetition.QualityPerfect), true},
		{models.ScoreGood, 80, int(spaced_repetition.QualityCorrectHesitation), true},
		{models.ScoreFair, 60, int(spaced_repetition.QualityCorrectDifficult), false},
		{models.ScorePoor, 30, int(spaced_repetition.QualityIncorrect), false},
		{models.ScorePoor, 0, int(spaced_repetition.QualityBlackout), false},
	}

	for _, tt := range tests {
		response := s.GradeAttempt(models.PronunciationResult{Score: tt.tier, Accuracy: tt.accuracy}, 1500)

		assert.Equal(t, tt.wantQuality, response.Quality, "tier %s", tt.tier)
		assert.Equal(t, tt.wantCorrect, response.WasCorrect, "tier %s", tt.tier)
		assert.Equal(t, int64(1500), response.ResponseTime)
	}
}

func TestSubmitReview_InitializesUnknownItem(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	record, err := s.SubmitReview("word-1", models.ReviewResponse{Quality: 5, WasCorrect: true}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, record.Repetitions)
	assert.Equal(t, 1, record.Interval)
	assert.Equal(t, 1, record.TotalReviews)

	stored, err := store.GetByItem("word-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, record, *stored)
}

func TestSubmitReview_AdvancesExistingItem(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	_, err := s.SubmitReview("word-1", models.ReviewResponse{Quality: 5, WasCorrect: true}, now)
	require.NoError(t, err)

	record, err := s.SubmitReview("word-1", models.ReviewResponse{Quality: 4, WasCorrect: true}, now.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, record.Repetitions)
	assert.Equal(t, 6, record.Interval)
}

func TestSubmitPronunciation_EndToEnd(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	result, record, err := s.SubmitPronunciation("word-1", "你好", "你好", "zh-CN", 2000, now)
	require.NoError(t, err)

	assert.Equal(t, models.ScoreExcellent, result.Score)
	assert.Equal(t, 1, record.Repetitions)
	assert.Equal(t, 1, record.CorrectReviews)
}

func TestSubmitPronunciation_FailedAttemptResets(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	_, _, err := s.SubmitPronunciation("word-1", "你好", "你好", "zh-CN", 2000, now)
	require.NoError(t, err)

	_, record, err := s.SubmitPronunciation("word-1", "", "你好", "zh-CN", 2000, now.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 0, record.Repetitions)
	assert.Equal(t, 0, record.Streak)
	assert.Equal(t, 1, record.Interval)
	assert.Equal(t, 1, record.CorrectReviews)
	assert.Equal(t, 2, record.TotalReviews)
}

func TestPlanSession(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.SubmitReview(id, models.ReviewResponse{Quality: 1, WasCorrect: false}, now)
		require.NoError(t, err)
	}

	session, err := s.PlanSession(now.AddDate(0, 0, 2), 5, models.SessionReview)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, session.WordIDs)
	assert.Equal(t, models.SessionReview, session.SessionType)
}

func TestOverview(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	_, err := s.SubmitReview("a", models.ReviewResponse{Quality: 5, WasCorrect: true}, now)
	require.NoError(t, err)
	_, err = s.SubmitReview("b", models.ReviewResponse{Quality: 0, WasCorrect: false}, now)
	require.NoError(t, err)

	stats, err := s.Overview(now.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, 2, stats.DueWords)
}

func TestExportImportRoundTrip(t *testing.T) {
	store := newMemoryStore()
	s := NewService(store)

	_, err := s.SubmitReview("a", models.ReviewResponse{Quality: 5, WasCorrect: true}, now)
	require.NoError(t, err)
	_, err = s.SubmitReview("b", models.ReviewResponse{Quality: 3, WasCorrect: true}, now)
	require.NoError(t, err)

	data, err := s.ExportRecords(now)
	require.NoError(t, err)

	before, err := store.GetAll()
	require.NoError(t, err)

	count, err := s.ImportRecords(data)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	after, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
