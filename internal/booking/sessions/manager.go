// Package sessions mediates between the turn pipeline and the conversation
// state repository: it hands each turn a usable snapshot and persists the
// advanced one afterwards.
package sessions

import (
	"context"

	"github.com/bookative-core/server/internal/booking/model"
	logx "github.com/bookative-core/server/pkg/logger"
)

type Manager struct {
	repo model.StateRepository
}

func NewManager(repo model.StateRepository) *Manager {
	return &Manager{repo: repo}
}

// Load returns the stored state for the conversation, or a fresh greeting
// state when none exists yet.
func (m *Manager) Load(ctx context.Context, conversationID string) (model.ConversationState, error) {
	state, err := m.repo.Load(ctx, conversationID)
	if err != nil {
		return model.ConversationState{}, err
	}
	if state == nil {
		logx.Debug().Str("conversation_id", conversationID).Msg("starting new conversation")
		return model.NewConversationState(), nil
	}
	return *state, nil
}

// Save persists the advanced snapshot for the next turn.
func (m *Manager) Save(ctx context.Context, conversationID string, state model.ConversationState) error {
	return m.repo.Save(ctx, conversationID, state)
}

// Reset drops the stored state entirely; the next turn starts from greeting.
func (m *Manager) Reset(ctx context.Context, conversationID string) error {
	return m.repo.Clear(ctx, conversationID)
}
