package model

import "time"

// Step is the dialogue manager's current phase. It controls which handler
// processes the next utterance.
type Step string

const (
	StepGreeting       Step = "greeting"
	StepCollectingInfo Step = "collecting_info"
	StepShowingSlots   Step = "showing_slots"
	StepConfirming     Step = "confirming"
	// StepCompleted is reached transiently after a successful booking and
	// immediately resets back to StepGreeting.
	StepCompleted Step = "completed"
)

// Intent is the coarse classification of the user's goal, derived from
// keyword presence. Sticky across turns until the conversation resets.
type Intent string

const (
	IntentBookAppointment   Intent = "book_appointment"
	IntentCheckAvailability Intent = "check_availability"
)

// ExtractedInfo accumulates booking details across turns. Fields are only
// overwritten when a turn yields a new non-empty value, never cleared by an
// empty extraction.
type ExtractedInfo struct {
	Date        time.Time `json:"date,omitempty"`
	Time        string    `json:"time,omitempty"`
	Duration    int       `json:"duration,omitempty"` // minutes, 0 means unset
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
}

// HasDate reports whether a usable date has been collected.
func (i ExtractedInfo) HasDate() bool {
	return !i.Date.IsZero()
}

// ConversationState is the single mutable entity of one conversation.
// The engine threads it explicitly: each turn is a pure function
// (state, utterance) -> (new state, messages). SelectedSlot is set only
// while Step is StepConfirming and always refers to an element of the most
// recent SuggestedSlots snapshot.
type ConversationState struct {
	Step           Step          `json:"step"`
	Intent         Intent        `json:"intent,omitempty"`
	ExtractedInfo  ExtractedInfo `json:"extracted_info"`
	SuggestedSlots []TimeSlot    `json:"suggested_slots,omitempty"`
	SelectedSlot   *TimeSlot     `json:"selected_slot,omitempty"`
}

// NewConversationState returns the initial state of a fresh conversation.
func NewConversationState() ConversationState {
	return ConversationState{Step: StepGreeting}
}

// Clone returns a deep copy so a turn can mutate its own snapshot without
// touching the caller's value.
func (s ConversationState) Clone() ConversationState {
	out := s
	if len(s.SuggestedSlots) > 0 {
		out.SuggestedSlots = make([]TimeSlot, len(s.SuggestedSlots))
		copy(out.SuggestedSlots, s.SuggestedSlots)
	}
	if s.SelectedSlot != nil {
		slot := *s.SelectedSlot
		out.SelectedSlot = &slot
	}
	return out
}

// Reset returns the state to its initial values after a completed booking.
func (s *ConversationState) Reset() {
	*s = NewConversationState()
}
