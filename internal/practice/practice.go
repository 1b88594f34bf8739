package practice

import (
	"fmt"
	"time"

	"github.com/example/hanbot/internal/export"
	"github.com/example/hanbot/internal/mastery"
	"github.com/example/hanbot/internal/planner"
	"github.com/example/hanbot/internal/pronunciation"
	"github.com/example/hanbot/internal/spaced_repetition"
	"github.com/example/hanbot/pkg/models"
)

// recordStore is the review-record persistence the service needs
type recordStore interface {
	GetByItem(itemID string) (*models.ReviewRecord, error)
	GetAll() ([]models.ReviewRecord, error)
	Upsert(record *models.ReviewRecord) error
	ReplaceAll(records []models.ReviewRecord) error
}

// QualityMapping translates evaluator score tiers into SM-2 quality grades.
// The engine deliberately leaves this policy to its caller; this is the
// one documented table used across the application.
type QualityMapping map[models.ScoreTier]spaced_repetition.QualityResponse

// DefaultQualityMapping returns the standard tier translation
func DefaultQualityMapping() QualityMapping {
	return QualityMapping{
		models.ScoreExcellent: spaced_repetition.QualityPerfect,
		models.ScoreGood:      spaced_repetition.QualityCorrectHesitation,
		models.ScoreFair:      spaced_repetition.QualityCorrectDifficult,
		models.ScorePoor:      spaced_repetition.QualityIncorrect,
	}
}

// PassAccuracy is the composite accuracy (0-100) at which an attempt
// counts as correct for the lifetime counters.
const PassAccuracy = 70.0

// Service runs practice flows: it evaluates attempts, feeds the scheduler
// and keeps the record store up to date. Updates for a single item must
// not run concurrently; the store key serializes per item at the caller.
type Service struct {
	store     recordStore
	evaluator *pronunciation.Evaluator
	algorithm *spaced_repetition.SM2
	mapping   QualityMapping
}

// NewService creates a practice service over the given record store
func NewService(store recordStore) *Service {
	return &Service{
		store:     store,
		evaluator: pronunciation.NewEvaluator(),
		algorithm: spaced_repetition.NewSM2(),
		mapping:   DefaultQualityMapping(),
	}
}

// GradeAttempt converts an evaluation into a scheduler response using the
// configured quality mapping. A zero-accuracy attempt is demoted to a
// complete blackout regardless of tier.
func (s *Service) GradeAttempt(result models.PronunciationResult, responseTime int64) models.ReviewResponse {
	quality := s.mapping[result.Score]
	if result.Accuracy == 0 {
		quality = spaced_repetition.QualityBlackout
	}
	return models.ReviewResponse{
		Quality:      int(quality),
		ResponseTime: responseTime,
		WasCorrect:   result.Accuracy >= PassAccuracy,
	}
}

// SubmitPronunciation evaluates a spoken attempt against the expected text,
// grades it and advances the item's review schedule.
func (s *Service) SubmitPronunciation(itemID, transcript, expected, language string, responseTime int64, now time.Time) (models.PronunciationResult, models.ReviewRecord, error) {
	result := s.evaluator.Evaluate(transcript, expected, language)
	record, err := s.SubmitReview(itemID, s.GradeAttempt(result, responseTime), now)
	if err != nil {
		return result, models.ReviewRecord{}, err
	}
	return result, record, nil
}

// SubmitReview advances an item's schedule from a direct recall response
// (typed answer, self-graded flashcard). Unknown items are initialized on
// first sight.
func (s *Service) SubmitReview(itemID string, response models.ReviewResponse, now time.Time) (models.ReviewRecord, error) {
	stored, err := s.store.GetByItem(itemID)
	if err != nil {
		return models.ReviewRecord{}, err
	}

	var record models.ReviewRecord
	if stored == nil {
		record = s.algorithm.Initialize(itemID, now)
	} else {
		record = *stored
	}

	record = s.algorithm.ProcessReview(record, response, now)
	if err := s.store.Upsert(&record); err != nil {
		return models.ReviewRecord{}, err
	}
	return record, nil
}

// PlanSession builds a study queue sized to the time budget
func (s *Service) PlanSession(now time.Time, targetMinutes int, mode models.SessionType) (models.StudySession, error) {
	records, err := s.store.GetAll()
	if err != nil {
		return models.StudySession{}, err
	}
	return planner.Plan(records, now, targetMinutes, mode), nil
}

// Overview returns aggregate statistics over the whole collection
func (s *Service) Overview(now time.Time) (mastery.CollectionStats, error) {
	records, err := s.store.GetAll()
	if err != nil {
		return mastery.CollectionStats{}, err
	}
	return mastery.Stats(records, now), nil
}

// ExportRecords serializes the whole collection into the backup envelope
func (s *Service) ExportRecords(now time.Time) ([]byte, error) {
	records, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}
	return export.Export(records, now)
}

// ImportRecords restores a backup envelope, replacing the stored record
// set with the valid subset of the payload. Returns how many records were
// restored.
func (s *Service) ImportRecords(data []byte) (int, error) {
	records, err := export.Import(data)
	if err != nil {
		return 0, fmt.Errorf("failed to import records: %v", err)
	}
	if err := s.store.ReplaceAll(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
