package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/state"
)

// fakeGameClient records the last call made against it and returns
// scripted results, letting dispatch_test assert GameExecutor routes each
// catalog action name onto the right gameclient.Client method.
type fakeGameClient struct {
	lastCall string
	lastX    int
	lastY    int
	lastItem string
	lastQty  int
	lastSlot string
	result   gameclient.ActionResult
	err      error
}

func (f *fakeGameClient) GetCharacter(ctx context.Context, name string) (gameclient.CharacterSnapshot, error) {
	f.lastCall = "get_character"
	return f.result.Character, f.err
}

func (f *fakeGameClient) FightMonster(ctx context.Context, name string) (gameclient.ActionResult, error) {
	f.lastCall = "fight_monster"
	return f.result, f.err
}

func (f *fakeGameClient) GatherResource(ctx context.Context, name string) (gameclient.ActionResult, error) {
	f.lastCall = "gather_resource"
	return f.result, f.err
}

func (f *fakeGameClient) Move(ctx context.Context, name string, x, y int) (gameclient.ActionResult, error) {
	f.lastCall = "move"
	f.lastX, f.lastY = x, y
	return f.result, f.err
}

func (f *fakeGameClient) Craft(ctx context.Context, name, itemCode string, quantity int) (gameclient.ActionResult, error) {
	f.lastCall = "craft"
	f.lastItem, f.lastQty = itemCode, quantity
	return f.result, f.err
}

func (f *fakeGameClient) Equip(ctx context.Context, name, itemCode, slot string) (gameclient.ActionResult, error) {
	f.lastCall = "equip"
	f.lastItem, f.lastSlot = itemCode, slot
	return f.result, f.err
}

func (f *fakeGameClient) Rest(ctx context.Context, name string) (gameclient.ActionResult, error) {
	f.lastCall = "rest"
	return f.result, f.err
}

func (f *fakeGameClient) Bank(ctx context.Context, name, itemCode string, quantity int) (gameclient.ActionResult, error) {
	f.lastCall = "bank"
	f.lastItem, f.lastQty = itemCode, quantity
	return f.result, f.err
}

func TestGameExecutor_Move_ReadsTargetFromEffects(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Success: true}}
	exec := NewGameExecutor(client)

	action := catalog.Action{Name: "move", Effects: map[string]state.Value{
		"target_x": state.Int(3),
		"target_y": state.Int(4),
	}}
	outcome := exec.Execute(context.Background(), "hero", action, nil)

	assert.Equal(t, "move", client.lastCall)
	assert.Equal(t, 3, client.lastX)
	assert.Equal(t, 4, client.lastY)
	assert.True(t, outcome.Success)
}

func TestGameExecutor_Move_UnknownCoordinatesReturnsError(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Success: true}}
	exec := NewGameExecutor(client)

	outcome := exec.Execute(context.Background(), "hero", catalog.Action{Name: "move"}, nil)

	assert.False(t, outcome.Success)
	assert.ErrorIs(t, outcome.Err, agenterr.ErrCoordinateUnknown)
	assert.Empty(t, client.lastCall, "no wire call should be made without a known target")
}

func TestGameExecutor_Move_ParameterizedTargetSucceeds(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Success: true}}
	exec := NewGameExecutor(client)

	action := catalog.Action{Name: "move_to_workshop:weaponcrafting", Effects: map[string]state.Value{
		"target_x": state.Int(5),
		"target_y": state.Int(9),
	}}
	outcome := exec.Execute(context.Background(), "hero", action, nil)

	assert.Equal(t, "move", client.lastCall)
	assert.Equal(t, 5, client.lastX)
	assert.Equal(t, 9, client.lastY)
	assert.True(t, outcome.Success)
}

func TestGameExecutor_Craft_DefaultsQuantityToOne(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Success: true}}
	exec := NewGameExecutor(client)

	action := catalog.Action{Name: "craft_item", Effects: map[string]state.Value{
		"item_code": state.String("copper_sword"),
	}}
	exec.Execute(context.Background(), "hero", action, nil)

	assert.Equal(t, "craft", client.lastCall)
	assert.Equal(t, "copper_sword", client.lastItem)
	assert.Equal(t, 1, client.lastQty)
}

func TestGameExecutor_Equip_ReadsItemAndSlot(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Success: true}}
	exec := NewGameExecutor(client)

	action := catalog.Action{Name: "equip_item", Effects: map[string]state.Value{
		"item_code": state.String("copper_sword"),
		"slot":      state.String("weapon"),
	}}
	exec.Execute(context.Background(), "hero", action, nil)

	assert.Equal(t, "equip", client.lastCall)
	assert.Equal(t, "copper_sword", client.lastItem)
	assert.Equal(t, "weapon", client.lastSlot)
}

func TestGameExecutor_FightMonster_PropagatesFailure(t *testing.T) {
	client := &fakeGameClient{err: assert.AnError}
	exec := NewGameExecutor(client)

	outcome := exec.Execute(context.Background(), "hero", catalog.Action{Name: "fight_monster"}, nil)
	assert.False(t, outcome.Success)
	assert.Error(t, outcome.Err)
}

func TestGameExecutor_Discovery_FindCorrectWorkshop_ProbesAndTagsLearning(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Character: gameclient.CharacterSnapshot{Name: "hero"}}}
	exec := NewGameExecutor(client)

	action := catalog.Action{
		Name:          learning.ActionFindCorrectWorkshop,
		Preconditions: map[string]state.Value{"workshop_type": state.String("weaponcrafting")},
		Effects:       map[string]state.Value{"workshop_location_known": state.Bool(true)},
	}
	outcome := exec.Execute(context.Background(), "hero", action, map[string]state.Value{})

	require.Equal(t, "get_character", client.lastCall)
	assert.True(t, outcome.Success)
	assert.Equal(t, learning.ActionFindCorrectWorkshop, outcome.Learning.ActionName)
	assert.Equal(t, "weaponcrafting", outcome.Learning.WorkshopType)
	assert.Equal(t, state.Bool(true), outcome.EffectOverrides["workshop_location_known"])
}

func TestGameExecutor_UnknownAction_FallsBackToProbe(t *testing.T) {
	client := &fakeGameClient{result: gameclient.ActionResult{Character: gameclient.CharacterSnapshot{Name: "hero"}}}
	exec := NewGameExecutor(client)

	outcome := exec.Execute(context.Background(), "hero", catalog.Action{Name: "some_future_action"}, nil)
	assert.Equal(t, "get_character", client.lastCall)
	assert.True(t, outcome.Success)
}
