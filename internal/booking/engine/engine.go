// Package engine implements the finite-state dialogue manager. Each turn is
// a pure function over the conversation state: the caller passes the current
// snapshot and receives the advanced snapshot plus the ordered outgoing
// messages. The engine holds no per-conversation state of its own, which
// keeps the single-writer discipline a caller-side concern by construction.
package engine

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/parser"
	logx "github.com/bookative-core/server/pkg/logger"
)

var (
	// Affirmative is checked before negative, matching the confirmation
	// semantics users expect from "yes, book it".
	affirmativeRe = regexp.MustCompile(`(?i)yes|confirm|book|okay|ok`)
	negativeRe    = regexp.MustCompile(`(?i)no|cancel|back`)

	// A bare integer selects a slot by 1-based index; anything else with a
	// time-like token selects by start-time substring.
	slotIndexRe = regexp.MustCompile(`^\d+$`)
	slotTimeRe  = regexp.MustCompile(`(?i)\d{1,2}:?\d{0,2}\s*(?:am|pm)?`)
)

// Engine drives one conversation turn at a time against the injected
// calendar collaborator.
type Engine struct {
	calendar        model.Calendar
	defaultTitle    string
	defaultDuration int
}

// New builds an engine around the given calendar.
func New(cal model.Calendar, cfg model.EngineConfig) *Engine {
	title := cfg.DefaultTitle
	if title == "" {
		title = "Appointment"
	}
	duration := cfg.DefaultDurationMinutes
	if duration <= 0 {
		duration = 60
	}
	return &Engine{
		calendar:        cal,
		defaultTitle:    title,
		defaultDuration: duration,
	}
}

// Extract parses one utterance. Thin wrapper kept so callers depend on the
// engine rather than the parser package.
func (e *Engine) Extract(utterance string) model.ExtractionResult {
	return parser.Parse(utterance)
}

// Merge folds this turn's extraction into the accumulated state. Fields are
// only overwritten by new non-empty values, never cleared.
func (e *Engine) Merge(state *model.ConversationState, parsed model.ExtractionResult) {
	if parsed.HasDate() {
		state.ExtractedInfo.Date = parsed.Date
	}
	if parsed.HasTime() {
		state.ExtractedInfo.Time = parsed.Time
	}
	if parsed.HasIntent() {
		state.Intent = parsed.Intent
	}
}

// ProcessTurn runs one full turn: extract, merge, dispatch. The input state
// is never mutated; the advanced snapshot is returned alongside the outgoing
// messages, which are guaranteed non-empty for any input.
func (e *Engine) ProcessTurn(ctx context.Context, state model.ConversationState, utterance string) (model.ConversationState, []*model.Message) {
	next := state.Clone()
	e.Merge(&next, e.Extract(utterance))
	messages := e.Dispatch(ctx, &next, utterance)
	return next, messages
}

// Dispatch routes an already-merged state to the handler for its step. Every
// path emits at least one message; a turn is never silently consumed.
func (e *Engine) Dispatch(ctx context.Context, state *model.ConversationState, utterance string) []*model.Message {
	var messages []*model.Message

	switch state.Step {
	case model.StepGreeting:
		messages = e.HandleGreeting(ctx, state)
	case model.StepCollectingInfo:
		messages = e.HandleInfoCollection(ctx, state)
	case model.StepShowingSlots:
		messages = e.HandleSlotSelection(ctx, state, utterance)
	case model.StepConfirming:
		messages = e.HandleConfirmation(ctx, state, utterance)
	default:
		messages = []*model.Message{helpMessage()}
	}

	if len(messages) == 0 {
		logx.Warn().Str("step", string(state.Step)).Msg("handler produced no messages, falling back to help")
		messages = []*model.Message{helpMessage()}
	}
	return messages
}

// HandleGreeting starts a booking or availability flow when an intent has
// been recognised, otherwise introduces the assistant.
func (e *Engine) HandleGreeting(ctx context.Context, state *model.ConversationState) []*model.Message {
	switch state.Intent {
	case model.IntentBookAppointment:
		state.Step = model.StepCollectingInfo
		return e.runBookingFlow(ctx, state)
	case model.IntentCheckAvailability:
		return e.runAvailabilityFlow(ctx, state)
	default:
		return []*model.Message{greetingMessage()}
	}
}

// HandleInfoCollection re-runs the booking flow with whatever has been
// merged so far, prompting again for anything still missing.
func (e *Engine) HandleInfoCollection(ctx context.Context, state *model.ConversationState) []*model.Message {
	return e.runBookingFlow(ctx, state)
}

// runBookingFlow advances toward showing slots once a date is known. The
// only required field is the date; duration falls back to the default.
func (e *Engine) runBookingFlow(ctx context.Context, state *model.ConversationState) []*model.Message {
	if !state.ExtractedInfo.HasDate() {
		return []*model.Message{infoRequestMessage()}
	}

	messages := []*model.Message{
		model.NewTextMessage("Great! Let me check available time slots for you."),
	}

	duration := state.ExtractedInfo.Duration
	if duration <= 0 {
		duration = e.defaultDuration
	}

	slots, err := e.calendar.GetAvailability(ctx, state.ExtractedInfo.Date, duration)
	if err != nil {
		logx.Error().Err(err).Msg("availability query failed")
		state.Step = model.StepCollectingInfo
		return append(messages, availabilityErrorMessage())
	}

	state.SuggestedSlots = slots
	if len(slots) == 0 {
		state.Step = model.StepCollectingInfo
		return append(messages, model.NewTextMessage(
			"I don't see any available slots for that time. Would you like to try a different date?"))
	}

	state.Step = model.StepShowingSlots
	return append(messages, timeSlotsMessage(slots))
}

// runAvailabilityFlow answers a "what's free" query, moving to slot
// selection when something is open.
func (e *Engine) runAvailabilityFlow(ctx context.Context, state *model.ConversationState) []*model.Message {
	if !state.ExtractedInfo.HasDate() {
		state.Step = model.StepCollectingInfo
		return []*model.Message{model.NewTextMessage(
			"Which date would you like me to check availability for?")}
	}

	messages := []*model.Message{
		model.NewTextMessage("Let me check what's available..."),
	}

	slots, err := e.calendar.GetAvailability(ctx, state.ExtractedInfo.Date, e.defaultDuration)
	if err != nil {
		logx.Error().Err(err).Msg("availability query failed")
		return append(messages, availabilityErrorMessage())
	}

	if len(slots) == 0 {
		return append(messages, model.NewTextMessage(
			"No available slots found for that date. Would you like to try another day?"))
	}

	state.SuggestedSlots = slots
	state.Step = model.StepShowingSlots
	messages = append(messages, model.NewTextMessage(
		"I found "+strconv.Itoa(len(slots))+" available time slots:"))
	return append(messages, timeSlotsMessage(slots))
}

// HandleSlotSelection interprets the utterance as a slot choice: a bare
// integer is a 1-based index into the offered slots, otherwise the first
// slot whose start time contains the time-like token wins.
func (e *Engine) HandleSlotSelection(ctx context.Context, state *model.ConversationState, utterance string) []*model.Message {
	trimmed := strings.TrimSpace(utterance)

	var selected *model.TimeSlot
	matched := false

	if slotIndexRe.MatchString(trimmed) {
		matched = true
		index, err := strconv.Atoi(trimmed)
		if err == nil && index >= 1 && index <= len(state.SuggestedSlots) {
			slot := state.SuggestedSlots[index-1]
			selected = &slot
		}
	} else if token := slotTimeRe.FindString(trimmed); token != "" {
		matched = true
		lower := strings.ToLower(token)
		for i := range state.SuggestedSlots {
			if strings.Contains(strings.ToLower(state.SuggestedSlots[i].StartTime), lower) {
				slot := state.SuggestedSlots[i]
				selected = &slot
				break
			}
		}
	}

	if !matched {
		return []*model.Message{model.NewTextMessage(
			`Please select a time slot by typing the number or time (e.g., "2" or "10:00 AM").`)}
	}
	if selected == nil {
		return []*model.Message{model.NewTextMessage(
			"I couldn't find that time slot. Please select from the available options above.")}
	}

	state.SelectedSlot = selected
	state.Step = model.StepConfirming
	return []*model.Message{confirmationMessage(*selected)}
}

// HandleConfirmation books on an affirmative answer, re-offers the slots on
// a negative one, and re-prompts otherwise.
func (e *Engine) HandleConfirmation(ctx context.Context, state *model.ConversationState, utterance string) []*model.Message {
	switch {
	case affirmativeRe.MatchString(utterance):
		if state.SelectedSlot == nil {
			// Nothing pending to book; ask again rather than consuming the
			// turn silently.
			return []*model.Message{confirmPromptMessage()}
		}
		return e.commitBooking(ctx, state)

	case negativeRe.MatchString(utterance):
		state.Step = model.StepShowingSlots
		state.SelectedSlot = nil
		return []*model.Message{
			model.NewTextMessage("No problem! Here are the available time slots again:"),
			timeSlotsMessage(state.SuggestedSlots),
		}

	default:
		return []*model.Message{confirmPromptMessage()}
	}
}

// commitBooking calls the calendar and either completes the conversation or
// falls back to slot selection with the current offers intact so the user
// can retry without a fresh availability query.
func (e *Engine) commitBooking(ctx context.Context, state *model.ConversationState) []*model.Message {
	slot := *state.SelectedSlot

	title := state.ExtractedInfo.Title
	if title == "" {
		title = e.defaultTitle
	}

	appointment, err := e.calendar.BookAppointment(ctx, slot, title, state.ExtractedInfo.Description)
	if err != nil {
		logx.Error().Err(err).Str("slot_id", slot.ID).Msg("booking failed")
		state.Step = model.StepShowingSlots
		state.SelectedSlot = nil
		return []*model.Message{model.NewTextMessage(
			"Sorry, there was an error booking your appointment. Please try again.")}
	}

	logx.Info().
		Str("appointment_id", appointment.ID).
		Str("slot_id", slot.ID).
		Msg("booking confirmed")

	message := successMessage(*appointment)
	state.Step = model.StepCompleted
	state.Reset()
	return []*model.Message{message}
}
