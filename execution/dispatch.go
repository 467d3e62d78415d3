package execution

import (
	"context"
	"strings"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/state"
)

// GameExecutor is the default ActionExecutor: it dispatches a catalog
// action by literal name onto the eight gameclient.Client calls, plus the
// discovery actions (evaluate_weapon_recipes, find_correct_workshop,
// transform_raw_materials, analyze_crafting_chain, explore,
// find_resources), which are implemented here as a character probe rather
// than a dedicated wire call. This is the same kind of name dispatch learning.Learner uses, and
// for the same reason: the catalog's Classification field says an action
// is a discovery action, not which HTTP call realizes it.
//
// Move/craft/equip/bank need parameters the catalog's state.Value effects
// carry by convention: an action declares its target as reaction keys
// (target_x/target_y for move, item_code/quantity for craft and bank,
// item_code/slot for equip). GameExecutor reads those off the action
// itself, not off current world state, since they're the action's own
// declared intent rather than something observed.
type GameExecutor struct {
	client gameclient.Client
}

// NewGameExecutor returns an ActionExecutor backed by client.
func NewGameExecutor(client gameclient.Client) *GameExecutor {
	return &GameExecutor{client: client}
}

func (e *GameExecutor) Execute(ctx context.Context, character string, action catalog.Action, current map[string]state.Value) Outcome {
	switch {
	case action.Name == "fight_monster" || action.Name == "fight":
		return e.fromResult(e.client.FightMonster(ctx, character))
	case action.Name == "gather_resources" || action.Name == "gather_resource":
		return e.fromResult(e.client.GatherResource(ctx, character))
	case action.Name == "move" || strings.HasPrefix(action.Name, "move_to_"):
		return e.move(ctx, character, action)
	case action.Name == "craft_item" || action.Name == learning.ActionCraftItem:
		item := strField(action.Effects, "item_code")
		qty := intField(action.Effects, "quantity")
		if qty == 0 {
			qty = 1
		}
		return e.fromResult(e.client.Craft(ctx, character, item, qty))
	case action.Name == "equip_item" || action.Name == "equip":
		item := strField(action.Effects, "item_code")
		slot := strField(action.Effects, "slot")
		return e.fromResult(e.client.Equip(ctx, character, item, slot))
	case action.Name == "rest":
		return e.fromResult(e.client.Rest(ctx, character))
	case action.Name == "bank_item" || action.Name == "bank":
		item := strField(action.Effects, "item_code")
		qty := intField(action.Effects, "quantity")
		return e.fromResult(e.client.Bank(ctx, character, item, qty))

	case action.Name == learning.ActionEvaluateWeaponRecipes:
		return e.discover(ctx, character, action, learning.Response{ActionName: action.Name})
	case action.Name == learning.ActionFindCorrectWorkshop:
		return e.discover(ctx, character, action, learning.Response{ActionName: action.Name, WorkshopType: strField(action.Preconditions, "workshop_type")})
	case action.Name == learning.ActionTransformRawMaterials:
		return e.discover(ctx, character, action, learning.Response{ActionName: action.Name})
	case action.Name == "analyze_crafting_chain":
		return e.discover(ctx, character, action, learning.Response{ActionName: action.Name})
	case action.Name == "explore" || action.Name == "find_resources":
		return e.discover(ctx, character, action, learning.Response{ActionName: action.Name})

	default:
		snap, err := e.client.GetCharacter(ctx, character)
		return Outcome{Success: err == nil, Err: err, Snapshot: snap}
	}
}

// move realizes a "move" or "move_to_*" action. The generic "move"
// template carries no destination of its own — it only survives the
// planner's withParameterizedMoves substitution when the knowledge base
// doesn't yet know any location — so a bare move reaching here has no
// usable target_x/target_y and reports ErrCoordinateUnknown rather than
// silently moving to (0, 0). Targeted move_to_* instances always carry
// real coordinates (execution/action_factory.go stamps them in).
func (e *GameExecutor) move(ctx context.Context, character string, action catalog.Action) Outcome {
	x, xok := action.Effects["target_x"]
	y, yok := action.Effects["target_y"]
	if !xok || !yok || !x.IsNumeric() || !y.IsNumeric() {
		return Outcome{Err: agenterr.New("GameExecutor.move", "execution", agenterr.ErrCoordinateUnknown).WithID(action.Name)}
	}
	return e.fromResult(e.client.Move(ctx, character, int(x.Num), int(y.Num)))
}

// discover realizes a discovery action as a GetCharacter probe plus a
// caller-seeded learning.Response: discovery actions observe the world
// (what workshop is here, what recipe does this weapon need) rather than
// mutate it the way execution actions do, so there's no dedicated wire
// call to make beyond refreshing the character snapshot.
func (e *GameExecutor) discover(ctx context.Context, character string, action catalog.Action, resp learning.Response) Outcome {
	snap, err := e.client.GetCharacter(ctx, character)
	if err != nil {
		return Outcome{Success: false, Err: err}
	}
	return Outcome{
		Success:         true,
		Snapshot:        snap,
		EffectOverrides: action.Apply(map[string]state.Value{}),
		Learning:        resp,
	}
}

func (e *GameExecutor) fromResult(res gameclient.ActionResult, err error) Outcome {
	if err != nil {
		return Outcome{Success: false, Err: err, Snapshot: res.Character}
	}
	return Outcome{
		Success:         res.Success,
		Message:         res.Message,
		Snapshot:        res.Character,
		CooldownSeconds: res.CooldownSeconds,
	}
}

func intField(fields map[string]state.Value, key string) int {
	v, ok := fields[key]
	if !ok || !v.IsNumeric() {
		return 0
	}
	return int(v.Num)
}

func strField(fields map[string]state.Value, key string) string {
	v, ok := fields[key]
	if !ok || v.Kind != state.KindString {
		return ""
	}
	return v.Str
}
