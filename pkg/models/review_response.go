package models

// ReviewResponse describes a single review attempt of an item.
//
// Quality and WasCorrect are independent signals: Quality drives the SM-2
// interval math, WasCorrect drives the accuracy counters. A hesitant but
// correct answer may carry WasCorrect=true with Quality=3.
type ReviewResponse struct {
	Quality      int   `json:"quality"`       // 0 (blackout) to 5 (perfect)
	ResponseTime int64 `json:"response_time"` // Milliseconds spent answering
	WasCorrect   bool  `json:"was_correct"`
}
