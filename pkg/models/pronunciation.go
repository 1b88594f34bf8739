package models

// ScoreTier is a coarse rating of a pronunciation attempt.
type ScoreTier string

const (
	ScoreExcellent ScoreTier = "excellent"
	ScoreGood      ScoreTier = "good"
	ScoreFair      ScoreTier = "fair"
	ScorePoor      ScoreTier = "poor"
)

// PronunciationDetails holds the sub-scores behind a composite accuracy,
// each in the 0.0-1.0 range.
type PronunciationDetails struct {
	CharacterAccuracy float64 `json:"character_accuracy"`
	ToneAccuracy      float64 `json:"tone_accuracy"`
	Fluency           float64 `json:"fluency"`
	Timing            float64 `json:"timing"`
}

// PronunciationResult is the evaluator's verdict on a single attempt:
// what the learner said versus what was expected, with a composite
// accuracy and feedback for display.
type PronunciationResult struct {
	Accuracy     float64              `json:"accuracy"`   // 0-100
	Confidence   float64              `json:"confidence"` // 0-1
	DetectedText string               `json:"detected_text"`
	ExpectedText string               `json:"expected_text"`
	Feedback     string               `json:"feedback"`
	Suggestions  []string             `json:"suggestions"`
	Score        ScoreTier            `json:"score"`
	Details      PronunciationDetails `json:"details"`
}
