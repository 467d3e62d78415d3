// Package gameclient implements the remote game-server client consumed by
// the Execution Manager's action executor (spec §6). The core never talks
// HTTP directly; it calls through the narrow Client interface here.
package gameclient

import "context"

// CharacterSnapshot is the server-authoritative view of one character
// (spec §6: "returns current level, xp, hp, position, skills, equipment
// slots, inventory, cooldown_expiration").
type CharacterSnapshot struct {
	Name               string
	Level              int
	XP                 int
	HPCurrent          int
	HPMax              int
	X                  int
	Y                  int
	Skills             map[string]int
	EquipmentSlots     map[string]string
	InventoryItems     map[string]int
	InventorySpaceUsed int
	InventoryCapacity  int
	CooldownExpiration string // RFC3339, empty when not on cooldown
}

// ActionResult is the outcome of any action call: a new character
// snapshot, a human-readable message, the cooldown the server imposed,
// and the drop and discovery fields that particular actions fill in.
type ActionResult struct {
	Success          bool
	Message          string
	Character        CharacterSnapshot
	CooldownSeconds  float64
	Drops            map[string]int // fight_monster, gather_resource
	WorkshopX        int            // find_correct_workshop-style discovery
	WorkshopY        int
	WorkshopType     string
	SelectedItemCode string // evaluate_weapon_recipes-style discovery
}

// Client is the opaque remote game-service interface the core consumes.
// Concrete action implementations and the HTTP transport are out of scope
// (spec §1); the Execution Manager and action executors depend only on
// this interface.
type Client interface {
	GetCharacter(ctx context.Context, name string) (CharacterSnapshot, error)
	FightMonster(ctx context.Context, name string) (ActionResult, error)
	GatherResource(ctx context.Context, name string) (ActionResult, error)
	Move(ctx context.Context, name string, x, y int) (ActionResult, error)
	Craft(ctx context.Context, name, itemCode string, quantity int) (ActionResult, error)
	Equip(ctx context.Context, name, itemCode, slot string) (ActionResult, error)
	Rest(ctx context.Context, name string) (ActionResult, error)
	Bank(ctx context.Context, name, itemCode string, quantity int) (ActionResult, error)
}
