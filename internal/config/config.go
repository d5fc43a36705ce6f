// Package config loads the project-level packwright configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	m "github.com/packwright/packwright/internal/model"
)

// ConfigFileName is the config file base name (without extension); viper
// probes its known extensions (yaml, json, toml, ...).
const ConfigFileName = "packwright"

// Config is the resolved project configuration. The conditions spec is
// resolved into its tagged variant here, once; downstream code never sees the
// raw shape.
type Config struct {
	// Patterns are the glob patterns selecting candidate source files,
	// relative to the project root.
	Patterns []string

	// OutDir is the base output directory, relative to the project root.
	OutDir string

	// Bundler is the external bundler command line.
	Bundler []string

	// EmitTypes includes declaration paths in the synthesized exports map.
	EmitTypes bool

	// DeclFile, when set, is where the condition constants declaration file
	// is written.
	DeclFile string

	// Conditions is nil when no conditions are configured.
	Conditions *m.ConditionSpec
}

// Load reads the packwright config from root. A missing config file yields
// the defaults.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.AddConfigPath(root)

	v.SetDefault("patterns", []string{"src/**/*"})
	v.SetDefault("outDir", "dist")
	v.SetDefault("emitTypes", true)
	v.SetDefault("declFile", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	conditions, err := resolveConditions(v.Get("conditions"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Patterns:   v.GetStringSlice("patterns"),
		OutDir:     v.GetString("outDir"),
		Bundler:    v.GetStringSlice("bundler"),
		EmitTypes:  v.GetBool("emitTypes"),
		DeclFile:   v.GetString("declFile"),
		Conditions: conditions,
	}, nil
}

// resolveConditions turns the raw config value into the tagged condition
// variant. Flat specs are a list of labels; grouped specs are a list of
// single-key maps so that group declaration order survives parsing. The
// reserved default label is normalized to the last position.
func resolveConditions(raw any) (*m.ConditionSpec, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("conditions: expected a list, got %T", raw)
	}

	if len(items) == 0 {
		return nil, nil
	}

	if _, ok := items[0].(string); ok {
		labels, err := stringLabels(items, "conditions")
		if err != nil {
			return nil, err
		}

		return m.NewFlatSpec(defaultLast(labels)), nil
	}

	groups := make([]m.ConditionGroup, 0, len(items))
	seen := make(map[string]struct{})

	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok || len(entry) != 1 {
			return nil, fmt.Errorf("conditions: each group must be a single-key map, got %v", item)
		}

		for name, value := range entry {
			rawLabels, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("conditions: group %q must list its labels", name)
			}

			labels, err := stringLabels(rawLabels, "group "+name)
			if err != nil {
				return nil, err
			}

			if len(labels) == 0 {
				return nil, fmt.Errorf("conditions: group %q has no labels", name)
			}

			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("conditions: duplicate group %q", name)
			}

			seen[name] = struct{}{}
			groups = append(groups, m.ConditionGroup{Name: name, Labels: defaultLast(labels)})
		}
	}

	return m.NewGroupedSpec(groups), nil
}

func stringLabels(items []any, where string) ([]string, error) {
	labels := make([]string, 0, len(items))
	seen := make(map[string]struct{})

	for _, item := range items {
		label, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("conditions: %s: label %v is not a string", where, item)
		}

		if label == "" {
			return nil, fmt.Errorf("conditions: %s: empty label", where)
		}

		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("conditions: %s: duplicate label %q", where, label)
		}

		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels, nil
}

// defaultLast moves the reserved default label to the end so it is always
// tried after every specific label.
func defaultLast(labels []string) []string {
	out := make([]string, 0, len(labels))

	hasDefault := false

	for _, label := range labels {
		if label == m.DefaultLabel {
			hasDefault = true
			continue
		}

		out = append(out, label)
	}

	if hasDefault {
		out = append(out, m.DefaultLabel)
	}

	return out
}
