package model

import "time"

// ExtractionResult is the outcome of parsing one utterance. Produced fresh
// each turn and never mutated. Absent fields are simply unset; extraction
// never fails.
type ExtractionResult struct {
	Intent Intent    `json:"intent,omitempty"`
	Date   time.Time `json:"date,omitempty"`
	Time   string    `json:"time,omitempty"`
}

// HasIntent reports whether an intent was recognised this turn.
func (r ExtractionResult) HasIntent() bool {
	return r.Intent != ""
}

// HasDate reports whether a date was extracted this turn.
func (r ExtractionResult) HasDate() bool {
	return !r.Date.IsZero()
}

// HasTime reports whether a time-of-day token was extracted this turn.
func (r ExtractionResult) HasTime() bool {
	return r.Time != ""
}
