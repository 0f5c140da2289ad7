package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/bookative-core/server/internal/booking/engine"
	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/sessions"
	logx "github.com/bookative-core/server/pkg/logger"
)

// NewExtractorPreHandler stashes the turn's identity into the graph local
// state before any processing happens, so downstream nodes can reach it via
// compose.ProcessState.
func NewExtractorPreHandler() func(context.Context, model.TurnInput, *model.TurnState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.TurnState) (model.TurnInput, error) {
		s.ConversationID = in.ConversationID
		s.Utterance = in.Utterance
		return in, nil
	}
}

// NewExtractorNode loads the conversation snapshot, parses the utterance and
// merges the extraction, producing the context every step handler consumes.
func NewExtractorNode(sm *sessions.Manager, eng *engine.Engine) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (*model.TurnContext, error) {
		state, err := sm.Load(ctx, in.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("load conversation state: %w", err)
		}

		parsed := eng.Extract(in.Utterance)
		next := state.Clone()
		eng.Merge(&next, parsed)

		logx.Debug().
			Str("conversation_id", in.ConversationID).
			Str("step", string(next.Step)).
			Str("intent", string(next.Intent)).
			Msg("turn extracted")

		return &model.TurnContext{
			ConversationID: in.ConversationID,
			Utterance:      in.Utterance,
			Extraction:     parsed,
			State:          next,
		}, nil
	})
}

// NewStepCondition routes a turn to the handler node for its current step.
func NewStepCondition() func(context.Context, *model.TurnContext) (string, error) {
	return func(ctx context.Context, in *model.TurnContext) (string, error) {
		switch in.State.Step {
		case model.StepCollectingInfo:
			return NodeInfoCollector, nil
		case model.StepShowingSlots:
			return NodeSlotSelector, nil
		case model.StepConfirming:
			return NodeConfirmer, nil
		default:
			return NodeGreeter, nil
		}
	}
}

// NewGreeterNode handles turns arriving in the greeting step.
func NewGreeterNode(eng *engine.Engine) *compose.Lambda {
	return handlerNode(func(ctx context.Context, tc *model.TurnContext, state *model.ConversationState) []*model.Message {
		return eng.HandleGreeting(ctx, state)
	})
}

// NewInfoCollectorNode handles turns arriving while info is still missing.
func NewInfoCollectorNode(eng *engine.Engine) *compose.Lambda {
	return handlerNode(func(ctx context.Context, tc *model.TurnContext, state *model.ConversationState) []*model.Message {
		return eng.HandleInfoCollection(ctx, state)
	})
}

// NewSlotSelectorNode handles turns while slots are on offer.
func NewSlotSelectorNode(eng *engine.Engine) *compose.Lambda {
	return handlerNode(func(ctx context.Context, tc *model.TurnContext, state *model.ConversationState) []*model.Message {
		return eng.HandleSlotSelection(ctx, state, tc.Utterance)
	})
}

// NewConfirmerNode handles turns while a booking awaits confirmation.
func NewConfirmerNode(eng *engine.Engine) *compose.Lambda {
	return handlerNode(func(ctx context.Context, tc *model.TurnContext, state *model.ConversationState) []*model.Message {
		return eng.HandleConfirmation(ctx, state, tc.Utterance)
	})
}

// handlerNode adapts an engine step handler to the node shape: it advances a
// private copy of the snapshot and bundles it with the produced messages.
func handlerNode(handle func(context.Context, *model.TurnContext, *model.ConversationState) []*model.Message) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, tc *model.TurnContext) (*model.TurnResult, error) {
		state := tc.State.Clone()
		messages := handle(ctx, tc, &state)
		return &model.TurnResult{State: state, Messages: messages}, nil
	})
}

// NewPersistNode saves the advanced snapshot and releases the messages.
// Persistence failure is logged but never surfaced: the UI always receives
// a well-formed message sequence.
func NewPersistNode(sm *sessions.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, result *model.TurnResult) ([]*model.Message, error) {
		var conversationID string
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.TurnState) error {
			conversationID = state.ConversationID
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		if err := sm.Save(ctx, conversationID, result.State); err != nil {
			logx.Error().
				Err(err).
				Str("conversation_id", conversationID).
				Msg("failed to persist conversation state")
		} else {
			logx.Debug().
				Str("conversation_id", conversationID).
				Str("step", string(result.State.Step)).
				Int("messages", len(result.Messages)).
				Msg("turn persisted")
		}

		return result.Messages, nil
	})
}
