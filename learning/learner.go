package learning

import (
	"context"

	"github.com/goaplanner/agent/knowledge"
	"github.com/goaplanner/agent/logging"
)

// Well-known discovery action names the learner and replan policy dispatch
// on, grounded on the original controller's _learn_from_action_response
// dispatch table. Declaring classification in the action catalog config
// decides *whether* an action is a discovery action (spec design note
// "Discovery vs. execution classification"); these names decide *what
// kind* of discovery it is, which the catalog's two-valued Classification
// field has no room to express.
const (
	ActionEvaluateWeaponRecipes  = "evaluate_weapon_recipes"
	ActionFindCorrectWorkshop    = "find_correct_workshop"
	ActionTransformRawMaterials  = "transform_raw_materials"
	ActionCraftItem              = "craft_item"
	ActionAnalyzeCraftingChain   = "analyze_crafting_chain"
)

var explorationActions = map[string]bool{
	"move":             true,
	"gather_resources": true,
	"find_resources":   true,
}

// Learner consumes discovery-action responses and writes what it learns
// into the shared knowledge base.
type Learner struct {
	store  *knowledge.Store
	logger logging.Logger

	// chainAnalysisReplans counts replans already granted per crafting
	// chain, enforcing the one-shot bound on analyze_crafting_chain
	// (spec §4.9, §8 property 7).
	chainAnalysisReplans map[string]int
}

// New returns a Learner writing into store.
func New(store *knowledge.Store, logger logging.Logger) *Learner {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Learner{store: store, logger: logger, chainAnalysisReplans: make(map[string]int)}
}

// Learn dispatches resp through the appropriate knowledge-recording path.
// Persistence failures inside the store are already logged-and-swallowed
// by knowledge.Store itself (spec §7 PersistenceFailure), so Learn never
// returns an error.
func (l *Learner) Learn(ctx context.Context, resp Response) {
	switch resp.ActionName {
	case ActionEvaluateWeaponRecipes:
		l.learnWeaponEvaluation(ctx, resp)
	case ActionFindCorrectWorkshop:
		l.learnWorkshopDiscovery(ctx, resp)
	case ActionTransformRawMaterials:
		l.learnMaterialTransformation(ctx, resp)
	case ActionCraftItem:
		l.learnCrafting(ctx, resp)
	default:
		if explorationActions[resp.ActionName] {
			l.learnExploration(ctx, resp)
		}
	}
}

func (l *Learner) learnWeaponEvaluation(ctx context.Context, resp Response) {
	if resp.SelectedItemCode == "" {
		return
	}
	l.store.RecordWeaponChoice(ctx, resp.GoalTag, resp.SelectedItemCode)
	l.logger.Info("learned weapon selection", map[string]interface{}{
		"item_code": resp.SelectedItemCode,
		"goal_tag":  resp.GoalTag,
	})
}

func (l *Learner) learnWorkshopDiscovery(ctx context.Context, resp Response) {
	if resp.WorkshopType == "" {
		return
	}
	l.store.RecordWorkshopLocation(ctx, resp.WorkshopType, resp.WorkshopX, resp.WorkshopY)
	l.logger.Info("learned workshop location", map[string]interface{}{
		"workshop_type": resp.WorkshopType,
		"x":             resp.WorkshopX,
		"y":             resp.WorkshopY,
	})
}

func (l *Learner) learnMaterialTransformation(ctx context.Context, resp Response) {
	if resp.MaterialItemCode == "" {
		return
	}
	l.store.RecordMaterialDiff(ctx, knowledge.MaterialDiff{ItemCode: resp.MaterialItemCode, Delta: resp.MaterialDelta})
}

func (l *Learner) learnCrafting(ctx context.Context, resp Response) {
	if resp.MaterialItemCode == "" {
		return
	}
	l.store.RecordMaterialDiff(ctx, knowledge.MaterialDiff{ItemCode: resp.MaterialItemCode, Delta: resp.MaterialDelta})
	l.store.RecordRecipe(ctx, resp.MaterialItemCode)
}

func (l *Learner) learnExploration(ctx context.Context, resp Response) {
	if resp.ExploredContentType == "" {
		return
	}
	l.store.RecordExploredTile(ctx, knowledge.ExploredTile{
		ContentType: resp.ExploredContentType,
		X:           resp.ExploredX,
		Y:           resp.ExploredY,
	})
}

// ShouldReplanAfterDiscovery implements the policy from spec §4.9:
//   - find_correct_workshop: no replan if the workshop was already known.
//   - analyze_crafting_chain: replan once per chain key, then block.
//   - evaluate_weapon_recipes: always replan.
//   - anything else: no replan.
//
// chainKey scopes the one-shot bound to a particular crafting chain (e.g.
// the target item code) rather than globally, matching "bounded ... per
// action name" from §8 property 7 while still letting two independent
// chains each get their one replan.
func (l *Learner) ShouldReplanAfterDiscovery(ctx context.Context, resp Response, chainKey string) bool {
	switch resp.ActionName {
	case ActionFindCorrectWorkshop:
		return !resp.WorkshopAlreadyKnown
	case ActionAnalyzeCraftingChain:
		if l.chainAnalysisReplans[chainKey] >= 1 {
			return false
		}
		l.chainAnalysisReplans[chainKey]++
		return true
	case ActionEvaluateWeaponRecipes:
		return true
	default:
		return false
	}
}
