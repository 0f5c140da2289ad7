package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStateClone(t *testing.T) {
	slot := TimeSlot{ID: "s1", StartTime: "9:00 AM"}
	state := ConversationState{
		Step:           StepConfirming,
		Intent:         IntentBookAppointment,
		SuggestedSlots: []TimeSlot{slot},
		SelectedSlot:   &slot,
	}

	clone := state.Clone()
	clone.SuggestedSlots[0].ID = "mutated"
	clone.SelectedSlot.ID = "mutated"
	clone.Step = StepGreeting

	assert.Equal(t, "s1", state.SuggestedSlots[0].ID)
	assert.Equal(t, "s1", state.SelectedSlot.ID)
	assert.Equal(t, StepConfirming, state.Step)
}

func TestConversationStateReset(t *testing.T) {
	slot := TimeSlot{ID: "s1"}
	state := ConversationState{
		Step:           StepConfirming,
		Intent:         IntentBookAppointment,
		ExtractedInfo:  ExtractedInfo{Date: time.Now(), Time: "2 PM", Duration: 30},
		SuggestedSlots: []TimeSlot{slot},
		SelectedSlot:   &slot,
	}

	state.Reset()

	assert.Equal(t, StepGreeting, state.Step)
	assert.Empty(t, state.Intent)
	assert.False(t, state.ExtractedInfo.HasDate())
	assert.Empty(t, state.SuggestedSlots)
	assert.Nil(t, state.SelectedSlot)
}

func TestConversationStateJSONRoundTrip(t *testing.T) {
	slot := TimeSlot{ID: "s1", Date: time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), StartTime: "9:00 AM", EndTime: "10:00 AM", Available: true}
	state := ConversationState{
		Step:           StepShowingSlots,
		Intent:         IntentCheckAvailability,
		ExtractedInfo:  ExtractedInfo{Time: "9:00 AM", Duration: 60},
		SuggestedSlots: []TimeSlot{slot},
	}

	b, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded ConversationState
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, state.Step, decoded.Step)
	assert.Equal(t, state.Intent, decoded.Intent)
	assert.Equal(t, state.ExtractedInfo, decoded.ExtractedInfo)
	require.Len(t, decoded.SuggestedSlots, 1)
	assert.Equal(t, slot.ID, decoded.SuggestedSlots[0].ID)
	assert.Nil(t, decoded.SelectedSlot)
}
