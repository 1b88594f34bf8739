package models

// SessionType describes which pools a study session draws from.
type SessionType string

const (
	SessionReview   SessionType = "review"
	SessionNewWords SessionType = "new_words"
	SessionMixed    SessionType = "mixed"
)

// StudySession is a planned practice queue: an ordered list of item ids
// sized to fit a time budget.
type StudySession struct {
	WordIDs       []string    `json:"word_ids"`
	EstimatedTime int         `json:"estimated_time"` // Minutes
	SessionType   SessionType `json:"session_type"`
}

// MasteryLevel classifies how far along an item is in the learning cycle.
type MasteryLevel string

const (
	MasteryNew      MasteryLevel = "new"
	MasteryLearning MasteryLevel = "learning"
	MasteryReview   MasteryLevel = "review"
	MasteryMastered MasteryLevel = "mastered"
)
