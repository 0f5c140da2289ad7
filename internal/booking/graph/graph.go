// Package graph composes the per-turn dialogue pipeline as an Eino graph:
// extract and merge, branch on the conversation step to the matching handler,
// then persist the advanced state and return the outgoing messages.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/bookative-core/server/internal/booking/engine"
	"github.com/bookative-core/server/internal/booking/graph/nodes"
	"github.com/bookative-core/server/internal/booking/model"
	"github.com/bookative-core/server/internal/booking/sessions"
	logx "github.com/bookative-core/server/pkg/logger"
)

// Runner executes one dialogue turn. Callers must serialize turns per
// conversation; the pipeline assumes at most one in-flight invocation for a
// given conversation id.
type Runner interface {
	ProcessMessage(ctx context.Context, in model.TurnInput) ([]*model.Message, error)
}

// Config holds everything needed to compose the full turn graph end-to-end.
type Config struct {
	Calendar  model.Calendar
	StateRepo model.StateRepository
	Engine    model.EngineConfig
}

type turnRunner struct {
	runnable compose.Runnable[model.TurnInput, []*model.Message]
}

func (r *turnRunner) ProcessMessage(ctx context.Context, in model.TurnInput) ([]*model.Message, error) {
	return r.runnable.Invoke(ctx, in)
}

// BuildTurnGraph constructs the engine and sessions manager, wires the graph
// and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Calendar == nil {
		return nil, fmt.Errorf("calendar is nil")
	}
	if cfg.StateRepo == nil {
		return nil, fmt.Errorf("state repository is nil")
	}

	eng := engine.New(cfg.Calendar, cfg.Engine)
	sm := sessions.NewManager(cfg.StateRepo)

	g := compose.NewGraph[model.TurnInput, []*model.Message](
		compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
			return &model.TurnState{}
		}),
	)

	g.AddLambdaNode(nodes.NodeExtractor,
		nodes.NewExtractorNode(sm, eng),
		compose.WithStatePreHandler(nodes.NewExtractorPreHandler()),
	)
	g.AddLambdaNode(nodes.NodeGreeter, nodes.NewGreeterNode(eng))
	g.AddLambdaNode(nodes.NodeInfoCollector, nodes.NewInfoCollectorNode(eng))
	g.AddLambdaNode(nodes.NodeSlotSelector, nodes.NewSlotSelectorNode(eng))
	g.AddLambdaNode(nodes.NodeConfirmer, nodes.NewConfirmerNode(eng))
	g.AddLambdaNode(nodes.NodePersist, nodes.NewPersistNode(sm))

	g.AddEdge(compose.START, nodes.NodeExtractor)

	stepBranch := compose.NewGraphBranch(
		nodes.NewStepCondition(),
		map[string]bool{
			nodes.NodeGreeter:       true,
			nodes.NodeInfoCollector: true,
			nodes.NodeSlotSelector:  true,
			nodes.NodeConfirmer:     true,
		},
	)
	if err := g.AddBranch(nodes.NodeExtractor, stepBranch); err != nil {
		logx.Error().Err(err).Msg("error adding step branch")
		return nil, fmt.Errorf("error adding step branch: %w", err)
	}

	for _, handler := range []string{
		nodes.NodeGreeter,
		nodes.NodeInfoCollector,
		nodes.NodeSlotSelector,
		nodes.NodeConfirmer,
	} {
		g.AddEdge(handler, nodes.NodePersist)
	}
	g.AddEdge(nodes.NodePersist, compose.END)

	runnable, err := g.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("error compiling turn graph")
		return nil, fmt.Errorf("error compiling turn graph: %w", err)
	}

	logx.Debug().Msg("turn graph compiled successfully")
	return &turnRunner{runnable: runnable}, nil
}
