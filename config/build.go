package config

import (
	"fmt"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/state"
)

// BuildCatalog constructs a populated, unfrozen Action Catalog from a
// parsed actions.yaml. The caller (typically the Execution Manager, at
// the start of Phase I) is responsible for calling Freeze once planning
// begins (spec §4.3).
func BuildCatalog(cfg *ActionsConfig) (*catalog.Catalog, error) {
	c := catalog.New()
	for name, def := range cfg.Actions {
		for key, raw := range def.Conditions {
			value, err := Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("action %s condition %s: %w", name, key, err)
			}
			if err := c.AddCondition(name, key, value); err != nil {
				return nil, err
			}
		}
		for key, raw := range def.Reactions {
			value, err := Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("action %s reaction %s: %w", name, key, err)
			}
			if err := c.AddReaction(name, key, value); err != nil {
				return nil, err
			}
		}
		weight := def.Weight
		if weight == 0 {
			weight = 1
		}
		if err := c.SetWeight(name, weight); err != nil {
			return nil, err
		}

		class := catalog.Execution
		if def.Classification == "discovery" {
			class = catalog.Discovery
		}
		if err := c.SetClassification(name, class); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BuildDefaults parses a state_defaults.yaml into a flat
// map[string]state.Value suitable for worldstate.Defaults.
func BuildDefaults(cfg *StateDefaultsConfig) (map[string]state.Value, error) {
	out := make(map[string]state.Value, len(cfg.Defaults))
	for key, raw := range cfg.Defaults {
		value, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("state default %s: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}

// BuildGoal parses one named entry of goals.yaml into a flat
// map[string]state.Value suitable for worldstate.MinimalGoal.
func BuildGoal(cfg *GoalTemplatesConfig, name string) (map[string]state.Value, error) {
	fields, ok := cfg.Goals[name]
	if !ok {
		return nil, fmt.Errorf("goal template %q not found", name)
	}
	out := make(map[string]state.Value, len(fields))
	for key, raw := range fields {
		value, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("goal %s key %s: %w", name, key, err)
		}
		out[key] = value
	}
	return out, nil
}
