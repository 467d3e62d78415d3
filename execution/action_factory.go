package execution

import (
	"context"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/state"
)

// buildMoveActions instantiates one concrete, targeted move action per
// location the knowledge base has discovered so far — a workshop or an
// explored resource tile — grounded on the per-target instantiation
// original_source's gathering action factory performs for gathering
// actions. The catalog's generic "move" template carries no destination;
// without these instances GameExecutor has nothing to send to the game
// client's Move call once the planner picks "move".
func (m *Manager) buildMoveActions(ctx context.Context, available *catalog.Catalog) []catalog.Action {
	base, ok := available.Get("move")
	if !ok {
		return nil
	}

	var out []catalog.Action
	for _, w := range m.store.KnownWorkshops(ctx) {
		out = append(out, instantiateMove(base, "move_to_workshop:"+w.Type, w.X, w.Y))
	}
	for _, t := range m.store.KnownExploredTiles(ctx) {
		out = append(out, instantiateMove(base, "move_to_resource:"+t.ContentType, t.X, t.Y))
	}
	return out
}

func instantiateMove(base catalog.Action, name string, x, y int) catalog.Action {
	instance := base.Clone()
	instance.Name = name
	instance.Effects["target_x"] = state.Int(x)
	instance.Effects["target_y"] = state.Int(y)
	return instance
}

// withParameterizedMoves returns available's action snapshot with the
// generic "move" template swapped out for its targeted move_to_* instances
// wherever the knowledge base has at least one known destination — the
// generic template only stays plannable when nothing is known yet, so a
// bare move (and the resulting coordinate-unknown failure that triggers
// discovery) is a last resort rather than a name a planner could always
// fall back on once real destinations exist.
func (m *Manager) withParameterizedMoves(ctx context.Context, available *catalog.Catalog) []catalog.Action {
	snapshot := available.Snapshot()
	params := m.buildMoveActions(ctx, available)
	if len(params) == 0 {
		return snapshot
	}

	out := make([]catalog.Action, 0, len(snapshot)+len(params))
	for _, a := range snapshot {
		if a.Name == "move" {
			continue
		}
		out = append(out, a)
	}
	return append(out, params...)
}

func filterExecutionActions(actions []catalog.Action) []catalog.Action {
	out := make([]catalog.Action, 0, len(actions))
	for _, a := range actions {
		if a.Classification == catalog.Execution {
			out = append(out, a)
		}
	}
	return out
}
