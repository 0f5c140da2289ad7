package repo

import (
	"context"
	"sync"

	"github.com/bookative-core/server/internal/booking/model"
)

// MemoryStateRepository is a map-backed model.StateRepository for tests and
// single-process runs. Values are deep-copied on the way in and out so the
// stored snapshot cannot be mutated through returned references.
type MemoryStateRepository struct {
	mu     sync.RWMutex
	states map[string]model.ConversationState
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{states: make(map[string]model.ConversationState)}
}

func (r *MemoryStateRepository) Load(ctx context.Context, conversationID string) (*model.ConversationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[conversationID]
	if !ok {
		return nil, nil
	}
	out := state.Clone()
	return &out, nil
}

func (r *MemoryStateRepository) Save(ctx context.Context, conversationID string, state model.ConversationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[conversationID] = state.Clone()
	return nil
}

func (r *MemoryStateRepository) Clear(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, conversationID)
	return nil
}

var _ model.StateRepository = (*MemoryStateRepository)(nil)
