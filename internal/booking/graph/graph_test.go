package graph

import (
	"context"
	"testing"
	"time"

	"github.com/bookative-core/server/internal/booking/calendar"
	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestRunner(t *testing.T) (Runner, *repo.MemoryStateRepository, *calendar.Service) {
	t.Helper()

	stateRepo := repo.NewMemoryStateRepository()
	cal := calendar.NewService(calendar.Options{})

	runner, err := BuildTurnGraph(context.Background(), Config{
		Calendar:  cal,
		StateRepo: stateRepo,
		Engine:    model.EngineConfig{},
	})
	require.NoError(t, err)
	return runner, stateRepo, cal
}

func TestTurnGraphGreeting(t *testing.T) {
	runner, _, _ := buildTestRunner(t)

	messages, err := runner.ProcessMessage(context.Background(), model.TurnInput{
		ConversationID: "c1",
		Utterance:      "hello!",
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, model.MessageTypeText, messages[0].Type)
	assert.Contains(t, messages[0].Content, "booking assistant")
}

func TestTurnGraphNeverReturnsEmpty(t *testing.T) {
	runner, _, _ := buildTestRunner(t)

	for _, utterance := range []string{"", "   ", "???"} {
		messages, err := runner.ProcessMessage(context.Background(), model.TurnInput{
			ConversationID: "c2",
			Utterance:      utterance,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, messages, "utterance=%q", utterance)
	}
}

func TestTurnGraphFullBookingConversation(t *testing.T) {
	runner, stateRepo, cal := buildTestRunner(t)
	ctx := context.Background()
	const conversationID = "c3"

	// Turn 1: booking request with a date moves straight to slot offers.
	messages, err := runner.ProcessMessage(ctx, model.TurnInput{
		ConversationID: conversationID,
		Utterance:      "Book a meeting tomorrow at 2 PM",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, model.MessageTypeTimeSlots, messages[1].Type)
	require.Len(t, messages[1].Slots, 8)

	state, err := stateRepo.Load(ctx, conversationID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, model.StepShowingSlots, state.Step)

	// Turn 2: pick the first slot by number.
	messages, err = runner.ProcessMessage(ctx, model.TurnInput{
		ConversationID: conversationID,
		Utterance:      "1",
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, model.MessageTypeConfirmation, messages[0].Type)
	assert.Contains(t, messages[0].Content, "9:00 AM")

	state, err = stateRepo.Load(ctx, conversationID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, model.StepConfirming, state.Step)
	require.NotNil(t, state.SelectedSlot)

	// Turn 3: confirm and complete; the conversation resets.
	messages, err = runner.ProcessMessage(ctx, model.TurnInput{
		ConversationID: conversationID,
		Utterance:      "yes",
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Content, "successfully booked")

	state, err = stateRepo.Load(ctx, conversationID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, model.StepGreeting, state.Step)
	assert.Nil(t, state.SelectedSlot)
	assert.Empty(t, state.SuggestedSlots)

	// The booked slot is now gone from availability.
	tomorrow := time.Now().AddDate(0, 0, 1)
	slots, err := cal.GetAvailability(ctx, tomorrow, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 7)
	for _, slot := range slots {
		assert.NotEqual(t, "9:00 AM", slot.StartTime)
	}
}

func TestTurnGraphDeclineReoffersSlots(t *testing.T) {
	runner, _, _ := buildTestRunner(t)
	ctx := context.Background()
	const conversationID = "c4"

	for _, utterance := range []string{"Book a meeting tomorrow", "2"} {
		_, err := runner.ProcessMessage(ctx, model.TurnInput{
			ConversationID: conversationID,
			Utterance:      utterance,
		})
		require.NoError(t, err)
	}

	messages, err := runner.ProcessMessage(ctx, model.TurnInput{
		ConversationID: conversationID,
		Utterance:      "no",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.MessageTypeTimeSlots, messages[1].Type)
	assert.Len(t, messages[1].Slots, 8)
}

func TestBuildTurnGraphValidation(t *testing.T) {
	_, err := BuildTurnGraph(context.Background(), Config{StateRepo: repo.NewMemoryStateRepository()})
	assert.Error(t, err)

	_, err = BuildTurnGraph(context.Background(), Config{Calendar: calendar.NewService(calendar.Options{})})
	assert.Error(t, err)
}
