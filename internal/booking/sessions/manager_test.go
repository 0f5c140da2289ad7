package sessions

import (
	"context"
	"testing"

	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLoadReturnsFreshState(t *testing.T) {
	m := NewManager(repo.NewMemoryStateRepository())

	state, err := m.Load(context.Background(), "new-conversation")
	require.NoError(t, err)
	assert.Equal(t, model.StepGreeting, state.Step)
	assert.Empty(t, state.SuggestedSlots)
}

func TestManagerSaveLoadReset(t *testing.T) {
	m := NewManager(repo.NewMemoryStateRepository())
	ctx := context.Background()

	state := model.NewConversationState()
	state.Step = model.StepConfirming
	state.Intent = model.IntentBookAppointment
	require.NoError(t, m.Save(ctx, "c1", state))

	loaded, err := m.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.StepConfirming, loaded.Step)
	assert.Equal(t, model.IntentBookAppointment, loaded.Intent)

	require.NoError(t, m.Reset(ctx, "c1"))

	loaded, err = m.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.StepGreeting, loaded.Step)
	assert.Empty(t, loaded.Intent)
}
