package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/gameclient"
)

func newTestStore() *Store {
	return New(NewInMemoryBackend(), nil)
}

func TestStore_RecipeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	assert.False(t, s.HasRecipe(ctx, "copper_sword"))
	s.RecordRecipe(ctx, "copper_sword")
	assert.True(t, s.HasRecipe(ctx, "copper_sword"))
}

func TestStore_WorkshopLocationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, ok := s.WorkshopLocation(ctx, "weaponcrafting")
	assert.False(t, ok)

	s.RecordWorkshopLocation(ctx, "weaponcrafting", 10, 20)
	w, ok := s.WorkshopLocation(ctx, "weaponcrafting")
	require.True(t, ok)
	assert.Equal(t, 10, w.X)
	assert.Equal(t, 20, w.Y)
}

func TestStore_WeaponChoiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	s.RecordWeaponChoice(ctx, "defeat_monster", "copper_sword")
	code, ok := s.WeaponChoice(ctx, "defeat_monster")
	require.True(t, ok)
	assert.Equal(t, "copper_sword", code)
}

func TestStore_CharacterSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	s.RecordCharacterSnapshot(ctx, gameclient.CharacterSnapshot{Name: "hero", Level: 5})
	snap, ok := s.CharacterSnapshot(ctx, "hero")
	require.True(t, ok)
	assert.Equal(t, 5, snap.Level)
}

func TestStore_ExploredTileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	s.RecordExploredTile(ctx, ExploredTile{ContentType: "iron_rocks", X: 4, Y: 9})
	tile, ok := s.ExploredTile(ctx, "iron_rocks")
	require.True(t, ok)
	assert.Equal(t, 4, tile.X)
	assert.Equal(t, 9, tile.Y)
}
