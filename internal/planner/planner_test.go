package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hanbot/pkg/models"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func record(id string, dueOffsetDays int, repetitions int) models.ReviewRecord {
	return models.ReviewRecord{
		ItemID:      id,
		EaseFactor:  2.5,
		Interval:    1,
		Repetitions: repetitions,
		DueDate:     testNow.AddDate(0, 0, dueOffsetDays),
	}
}

func TestDueItems(t *testing.T) {
	records := []models.ReviewRecord{
		record("future", 2, 1),
		record("overdue-far", -5, 1),
		record("due-now", 0, 1),
		record("overdue-near", -1, 1),
	}

	due := DueItems(records, testNow)

	require.Len(t, due, 3)
	assert.Equal(t, "overdue-far", due[0].ItemID)
	assert.Equal(t, "overdue-near", due[1].ItemID)
	assert.Equal(t, "due-now", due[2].ItemID)
}

func TestDueItems_StableOnTies(t *testing.T) {
	records := []models.ReviewRecord{
		record("first", -1, 1),
		record("second", -1, 1),
		record("third", -1, 1),
	}

	due := DueItems(records, testNow)

	require.Len(t, due, 3)
	assert.Equal(t, "first", due[0].ItemID)
	assert.Equal(t, "second", due[1].ItemID)
	assert.Equal(t, "third", due[2].ItemID)
}

func TestNewItems(t *testing.T) {
	records := []models.ReviewRecord{
		record("a", 0, 0),
		record("b", 0, 2),
		record("c", 0, 0),
		record("d", 0, 0),
	}

	fresh := NewItems(records, 2)

	require.Len(t, fresh, 2)
	assert.Equal(t, "a", fresh[0].ItemID)
	assert.Equal(t, "c", fresh[1].ItemID)
}

func TestOptimalSessionSize_Bounds(t *testing.T) {
	var hard []models.ReviewRecord
	for i := 0; i < 50; i++ {
		r := record(fmt.Sprintf("w%d", i), 0, 1)
		r.EaseFactor = 1.3 // Every item very hard
		hard = append(hard, r)
	}

	for _, minutes := range []int{0, 1, 5, 60, 10000} {
		size := OptimalSessionSize(hard, minutes)
		assert.GreaterOrEqual(t, size, MinSessionSize, "target %d min", minutes)
		assert.LessOrEqual(t, size, MaxSessionSize, "target %d min", minutes)

		size = OptimalSessionSize(nil, minutes)
		assert.GreaterOrEqual(t, size, MinSessionSize)
		assert.LessOrEqual(t, size, MaxSessionSize)
	}
}

func TestOptimalSessionSize_DifficultyWeighting(t *testing.T) {
	easy := make([]models.ReviewRecord, 20)
	hard := make([]models.ReviewRecord, 20)
	for i := range easy {
		e := record(fmt.Sprintf("e%d", i), 0, 5)
		e.Streak = 5
		e.TotalReviews = 10
		e.CorrectReviews = 10
		easy[i] = e

		h := record(fmt.Sprintf("h%d", i), 0, 1)
		h.EaseFactor = 1.3
		hard[i] = h
	}

	// A fixed budget fits more easy items than hard ones
	assert.Greater(t, OptimalSessionSize(easy, 2), OptimalSessionSize(hard, 2))
}

func TestPlan_Mixed(t *testing.T) {
	var records []models.ReviewRecord
	for i := 0; i < 40; i++ {
		records = append(records, record(fmt.Sprintf("due%d", i), -1, 1))
	}
	for i := 0; i < 40; i++ {
		records = append(records, record(fmt.Sprintf("new%d", i), 0, 0))
	}

	session := Plan(records, testNow, 5, models.SessionMixed)

	size := OptimalSessionSize(records, 5)
	require.Len(t, session.WordIDs, size)
	assert.Equal(t, models.SessionMixed, session.SessionType)

	dueCount := 0
	for _, id := range session.WordIDs {
		if id[:3] == "due" {
			dueCount++
		}
	}
	assert.Equal(t, int(float64(size)*0.7), dueCount)
}

func TestPlan_ReviewOnly(t *testing.T) {
	records := []models.ReviewRecord{
		record("due", -1, 1),
		record("fresh", 5, 0),
	}

	session := Plan(records, testNow, 5, models.SessionReview)

	assert.Equal(t, []string{"due"}, session.WordIDs)
	assert.Equal(t, 1, session.EstimatedTime) // ceil(1 * 0.75)
}

func TestPlan_NewWordsOnly(t *testing.T) {
	records := []models.ReviewRecord{
		record("due", -1, 3),
		record("fresh", 0, 0),
	}

	session := Plan(records, testNow, 5, models.SessionNewWords)

	assert.Equal(t, []string{"fresh"}, session.WordIDs)
}

func TestPlan_NoDuplicates(t *testing.T) {
	// A brand-new record is both due and new; mixed mode must not pick it twice
	records := []models.ReviewRecord{record("only", 0, 0)}

	session := Plan(records, testNow, 5, models.SessionMixed)

	assert.Equal(t, []string{"only"}, session.WordIDs)
}

func TestPlan_EstimatedTime(t *testing.T) {
	var records []models.ReviewRecord
	for i := 0; i < 100; i++ {
		records = append(records, record(fmt.Sprintf("due%d", i), -1, 1))
	}

	session := Plan(records, testNow, 60, models.SessionReview)

	assert.Equal(t, MaxSessionSize, len(session.WordIDs))
	assert.Equal(t, 23, session.EstimatedTime) // ceil(30 * 0.75)
}
