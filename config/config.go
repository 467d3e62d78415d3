// Package config loads the declarative YAML configuration the Action
// Catalog, World-State Adapter, and goal templates are built from (spec
// §6 "Configuration files"), layered with GOAP_-prefixed environment
// overrides via viper. Grounded on the teacher pack's viper.New() +
// SetConfigFile + Unmarshal pattern (tabular/reinforcement/learning.go),
// generalized to three config files and env-layering instead of one.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/goaplanner/agent/state"
)

// ActionDef is one entry of actions.yaml: name → {conditions, reactions,
// weight, classification} (spec §6).
type ActionDef struct {
	Conditions     map[string]RawValue `yaml:"conditions" mapstructure:"conditions"`
	Reactions      map[string]RawValue `yaml:"reactions" mapstructure:"reactions"`
	Weight         float64             `yaml:"weight" mapstructure:"weight"`
	Classification string              `yaml:"classification" mapstructure:"classification"`
}

// RawValue is the YAML-level encoding of a state.Value: a literal, the
// wildcard string "*", or a threshold expression string (">N", ">=N",
// "<N", "!null"). Parsed into a state.Value by Parse.
type RawValue struct {
	// Literal holds the decoded YAML scalar, sequence, or mapping when the
	// entry isn't a recognized sentinel/threshold string.
	Literal interface{} `yaml:",inline"`
	raw     string
	isRaw   bool
}

// UnmarshalYAML captures both the typed literal and, when the node is a
// bare scalar string, its raw text — so Parse can recognize "*" and
// threshold syntax without losing literal string values that merely look
// like them.
func (r *RawValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err == nil {
		r.raw = raw
		r.isRaw = true
		r.Literal = raw
		return nil
	}
	var generic interface{}
	if err := unmarshal(&generic); err != nil {
		return err
	}
	r.Literal = generic
	return nil
}

// ActionsConfig is the root of actions.yaml.
type ActionsConfig struct {
	Actions map[string]ActionDef `yaml:"actions" mapstructure:"actions"`
}

// StateDefaultsConfig is the root of state_defaults.yaml: initial values
// for every recognized state key, including nested records.
type StateDefaultsConfig struct {
	Defaults map[string]RawValue `yaml:"defaults" mapstructure:"defaults"`
}

// GoalTemplatesConfig is the root of goals.yaml: named goals with a target
// partial state.
type GoalTemplatesConfig struct {
	Goals map[string]map[string]RawValue `yaml:"goals" mapstructure:"goals"`
}

func loadYAML(path string, out interface{}) error {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	vp.SetEnvPrefix("GOAP")
	vp.AutomaticEnv()

	if err := vp.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := vp.Unmarshal(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// LoadActions reads an actions.yaml file.
func LoadActions(path string) (*ActionsConfig, error) {
	cfg := &ActionsConfig{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStateDefaults reads a state_defaults.yaml file.
func LoadStateDefaults(path string) (*StateDefaultsConfig, error) {
	cfg := &StateDefaultsConfig{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGoalTemplates reads a goals.yaml file.
func LoadGoalTemplates(path string) (*GoalTemplatesConfig, error) {
	cfg := &GoalTemplatesConfig{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse converts a RawValue into a state.Value, recognizing the wildcard
// sentinel and threshold syntax on the required side (spec design note:
// "thresholds ... evaluated at match time against the candidate value,
// never mutating the threshold into a literal" — this is the one place a
// threshold string is parsed, at config-load time, not on the A* hot
// path).
func Parse(r RawValue) (state.Value, error) {
	if r.isRaw {
		switch r.raw {
		case "*", "":
			return state.Unspecified(), nil
		case "!null":
			return state.NotNull(), nil
		}
		if v, ok := parseThreshold(r.raw); ok {
			return v, nil
		}
		return state.String(r.raw), nil
	}
	return parseLiteral(r.Literal)
}

func parseLiteral(v interface{}) (state.Value, error) {
	switch t := v.(type) {
	case nil:
		return state.Null(), nil
	case bool:
		return state.Bool(t), nil
	case int:
		return state.Int(t), nil
	case int64:
		return state.Int(int(t)), nil
	case float64:
		return state.Float(t), nil
	case string:
		if t == "*" || t == "" {
			return state.Unspecified(), nil
		}
		if t == "!null" {
			return state.NotNull(), nil
		}
		if parsed, ok := parseThreshold(t); ok {
			return parsed, nil
		}
		return state.String(t), nil
	case []interface{}:
		items := make([]state.Value, len(t))
		for i, elem := range t {
			parsed, err := parseLiteral(elem)
			if err != nil {
				return state.Value{}, err
			}
			items[i] = parsed
		}
		return state.Seq(items...), nil
	case map[string]interface{}:
		fields := make(map[string]state.Value, len(t))
		for k, elem := range t {
			parsed, err := parseLiteral(elem)
			if err != nil {
				return state.Value{}, err
			}
			fields[k] = parsed
		}
		return state.Record(fields), nil
	case map[interface{}]interface{}:
		fields := make(map[string]state.Value, len(t))
		for k, elem := range t {
			parsed, err := parseLiteral(elem)
			if err != nil {
				return state.Value{}, err
			}
			fields[fmt.Sprintf("%v", k)] = parsed
		}
		return state.Record(fields), nil
	default:
		return state.Value{}, fmt.Errorf("unsupported config value type %T", v)
	}
}

func parseThreshold(raw string) (state.Value, bool) {
	if len(raw) < 2 {
		return state.Value{}, false
	}
	var op string
	var rest string
	switch {
	case len(raw) >= 2 && raw[:2] == ">=":
		op, rest = ">=", raw[2:]
	case raw[0] == '>':
		op, rest = ">", raw[1:]
	case raw[0] == '<':
		op, rest = "<", raw[1:]
	default:
		return state.Value{}, false
	}
	var n float64
	if _, err := fmt.Sscanf(rest, "%g", &n); err != nil {
		return state.Value{}, false
	}
	switch op {
	case ">":
		return state.GT(n), true
	case ">=":
		return state.GTE(n), true
	case "<":
		return state.LT(n), true
	}
	return state.Value{}, false
}
