package knowledge

import (
	"context"
	"fmt"

	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/logging"
)

// Store is the typed accessor the Outcome Learner (§4.9), the Execution
// Manager, and the knowledge-based planner consult. It is intentionally
// opaque about wire format per spec.md's Non-goals ("persistence format of
// the knowledge base") — callers never see the underlying Backend.
type Store struct {
	backend Backend
	logger  logging.Logger
}

// New wraps a Backend with the typed knowledge-base accessors. A nil logger
// defaults to a no-op logger.
func New(backend Backend, logger logging.Logger) *Store {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Store{backend: backend, logger: logger}
}

// Workshop is a discovered crafting-workshop location for one workshop type.
type Workshop struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// MaterialDiff is the inventory delta reported by a material-transformation
// or crafting action.
type MaterialDiff struct {
	ItemCode string `json:"item_code"`
	Delta    int    `json:"delta"`
}

// ExploredTile records a map tile visited by an exploration action, keyed
// by content type so future planning can look up "where is a copper_rocks".
type ExploredTile struct {
	ContentType string `json:"content_type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

func (s *Store) persist(ctx context.Context, key string, value interface{}) {
	if err := s.backend.Set(ctx, key, value, 0); err != nil {
		// PersistenceFailure: logged, non-fatal, per spec.md §7.
		s.logger.WarnWithContext(ctx, "knowledge base persistence failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// HasRecipe reports whether the crafting chain for itemCode is known.
func (s *Store) HasRecipe(ctx context.Context, itemCode string) bool {
	var dummy struct{}
	ok, err := s.backend.Get(ctx, recipeKey(itemCode), &dummy)
	if err != nil {
		s.logger.Warn("knowledge base read failed", map[string]interface{}{"item_code": itemCode, "error": err.Error()})
		return false
	}
	return ok
}

// RecordRecipe marks itemCode's crafting chain as known.
func (s *Store) RecordRecipe(ctx context.Context, itemCode string) {
	s.persist(ctx, recipeKey(itemCode), true)
}

// RecordWorkshopLocation stores the coordinates of a workshop of the given
// type, as discovered by a find_correct_workshop-style discovery action.
func (s *Store) RecordWorkshopLocation(ctx context.Context, workshopType string, x, y int) {
	s.persist(ctx, workshopKey(workshopType), Workshop{Type: workshopType, X: x, Y: y})
}

// WorkshopLocation returns the known coordinates for workshopType, if any.
func (s *Store) WorkshopLocation(ctx context.Context, workshopType string) (Workshop, bool) {
	var w Workshop
	ok, err := s.backend.Get(ctx, workshopKey(workshopType), &w)
	if err != nil {
		s.logger.Warn("knowledge base read failed", map[string]interface{}{"workshop_type": workshopType, "error": err.Error()})
		return Workshop{}, false
	}
	return w, ok
}

// KnownWorkshops returns every workshop location discovered so far, for
// the planner's action factory to instantiate targeted move actions from.
func (s *Store) KnownWorkshops(ctx context.Context) []Workshop {
	keys, err := s.backend.Keys(ctx, "workshop:")
	if err != nil {
		s.logger.Warn("knowledge base scan failed", map[string]interface{}{"prefix": "workshop:", "error": err.Error()})
		return nil
	}
	out := make([]Workshop, 0, len(keys))
	for _, key := range keys {
		var w Workshop
		if ok, err := s.backend.Get(ctx, key, &w); err == nil && ok {
			out = append(out, w)
		}
	}
	return out
}

// KnownExploredTiles returns every explored tile discovered so far, for
// the planner's action factory to instantiate targeted move actions from.
func (s *Store) KnownExploredTiles(ctx context.Context) []ExploredTile {
	keys, err := s.backend.Keys(ctx, "explored_tile:")
	if err != nil {
		s.logger.Warn("knowledge base scan failed", map[string]interface{}{"prefix": "explored_tile:", "error": err.Error()})
		return nil
	}
	out := make([]ExploredTile, 0, len(keys))
	for _, key := range keys {
		var t ExploredTile
		if ok, err := s.backend.Get(ctx, key, &t); err == nil && ok {
			out = append(out, t)
		}
	}
	return out
}

// RecordWeaponChoice records the weapon item code selected by
// evaluate_weapon_recipes, so downstream craft_item steps can bind to it.
func (s *Store) RecordWeaponChoice(ctx context.Context, goalTag, itemCode string) {
	s.persist(ctx, weaponChoiceKey(goalTag), itemCode)
}

// WeaponChoice returns the weapon item code selected for goalTag, if any.
func (s *Store) WeaponChoice(ctx context.Context, goalTag string) (string, bool) {
	var code string
	ok, err := s.backend.Get(ctx, weaponChoiceKey(goalTag), &code)
	if err != nil {
		s.logger.Warn("knowledge base read failed", map[string]interface{}{"goal_tag": goalTag, "error": err.Error()})
		return "", false
	}
	return code, ok
}

// RecordMaterialDiff records an inventory delta reported by a material
// transformation or crafting action.
func (s *Store) RecordMaterialDiff(ctx context.Context, diff MaterialDiff) {
	s.persist(ctx, materialDiffKey(diff.ItemCode), diff)
}

// RecordExploredTile records a tile discovered by an exploration action.
func (s *Store) RecordExploredTile(ctx context.Context, tile ExploredTile) {
	s.persist(ctx, exploredTileKey(tile.ContentType), tile)
}

// ExploredTile returns the last known tile for the given content type.
func (s *Store) ExploredTile(ctx context.Context, contentType string) (ExploredTile, bool) {
	var t ExploredTile
	ok, err := s.backend.Get(ctx, exploredTileKey(contentType), &t)
	if err != nil {
		s.logger.Warn("knowledge base read failed", map[string]interface{}{"content_type": contentType, "error": err.Error()})
		return ExploredTile{}, false
	}
	return t, ok
}

// RecordCharacterSnapshot updates the character cache entry for
// snap.Name, keyed by character name (spec §6: "a list of per-character
// snapshot records keyed by name; updated after every successful action
// and on force_refresh").
func (s *Store) RecordCharacterSnapshot(ctx context.Context, snap gameclient.CharacterSnapshot) {
	s.persist(ctx, characterKey(snap.Name), snap)
}

// CharacterSnapshot returns the cached snapshot for name, if any.
func (s *Store) CharacterSnapshot(ctx context.Context, name string) (gameclient.CharacterSnapshot, bool) {
	var snap gameclient.CharacterSnapshot
	ok, err := s.backend.Get(ctx, characterKey(name), &snap)
	if err != nil {
		s.logger.Warn("knowledge base read failed", map[string]interface{}{"character": name, "error": err.Error()})
		return gameclient.CharacterSnapshot{}, false
	}
	return snap, ok
}

func characterKey(name string) string { return fmt.Sprintf("character:%s", name) }

func recipeKey(itemCode string) string        { return fmt.Sprintf("recipe:%s", itemCode) }
func workshopKey(workshopType string) string  { return fmt.Sprintf("workshop:%s", workshopType) }
func weaponChoiceKey(goalTag string) string   { return fmt.Sprintf("weapon_choice:%s", goalTag) }
func materialDiffKey(itemCode string) string  { return fmt.Sprintf("material_diff:%s", itemCode) }
func exploredTileKey(contentType string) string {
	return fmt.Sprintf("explored_tile:%s", contentType)
}
