package model

import (
	"context"
	"time"
)

// Calendar is the appointment store collaborator consumed by the dialogue
// engine. Implementations may simulate latency; all operations honor ctx.
type Calendar interface {
	// GetAvailability returns the open slots for the given date, in
	// business-hours order, pre-filtered to available ones.
	GetAvailability(ctx context.Context, date time.Time, durationMinutes int) ([]TimeSlot, error)

	// BookAppointment commits the slot and returns the confirmed appointment.
	// A store write failure is reported as an error, not a panic.
	BookAppointment(ctx context.Context, slot TimeSlot, title, description string) (*Appointment, error)

	// UpcomingAppointments lists future appointments sorted by date ascending.
	UpcomingAppointments(ctx context.Context) ([]Appointment, error)
}

// StateRepository persists per-conversation dialogue state between turns.
type StateRepository interface {
	// Load retrieves the state for a conversation, or nil when none exists.
	Load(ctx context.Context, conversationID string) (*ConversationState, error)

	// Save stores the state for a conversation, refreshing any TTL.
	Save(ctx context.Context, conversationID string, state ConversationState) error

	// Clear removes the stored state for a conversation.
	Clear(ctx context.Context, conversationID string) error
}
