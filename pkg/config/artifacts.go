package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soteria-labs/soteria/pkg/engine"
	"github.com/soteria-labs/soteria/pkg/lexicon"
	"github.com/soteria-labs/soteria/pkg/rules"
)

// Artifacts is the deployment-tuning file: extra detection rules, lexicon
// overlays, response templates, a resource table, and policy overrides.
// Everything is optional; unset sections keep the builtin behavior.
type Artifacts struct {
	Rules     []rules.Definition `yaml:"rules"`
	Lexicon   lexicon.Overlay    `yaml:"lexicon"`
	Templates engine.Templates   `yaml:"templates"`
	Resources map[string][]engine.SupportResource `yaml:"resources"`
	Policy    *engine.Policy     `yaml:"policy"`
}

// LoadArtifacts reads and validates the artifact file. A missing path is not
// an error (builtins apply); a file that exists but cannot be parsed or
// fails validation is, and the caller should treat it as fatal rather than
// start with a partially applied configuration.
func LoadArtifacts(path string) (*Artifacts, error) {
	if path == "" {
		return &Artifacts{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact file %s: %w", path, err)
	}
	var a Artifacts
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse artifact file %s: %w", path, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("artifact file %s: %w", path, err)
	}
	return &a, nil
}

func (a *Artifacts) validate() error {
	for cat := range a.Resources {
		if !validCategory(cat) {
			return fmt.Errorf("resources: unknown category %q", cat)
		}
	}
	for cat := range a.Templates.Explanations {
		if !validCategory(string(cat)) {
			return fmt.Errorf("templates: unknown category %q", cat)
		}
	}
	if a.Policy != nil {
		if err := a.Policy.Validate(); err != nil {
			return fmt.Errorf("policy: %w", err)
		}
	}
	// Rule and lexicon entries are validated by their own builders, which
	// reject unknown categories, bad regexes and out-of-range weights.
	return nil
}

// ResourceTable converts the string-keyed YAML section into the engine's
// category-keyed table. Returns nil when the section is empty so the engine
// falls back to the builtin table.
func (a *Artifacts) ResourceTable() map[engine.Category][]engine.SupportResource {
	if len(a.Resources) == 0 {
		return nil
	}
	out := make(map[engine.Category][]engine.SupportResource, len(a.Resources))
	for cat, res := range a.Resources {
		out[engine.Category(cat)] = res
	}
	return out
}

func validCategory(s string) bool {
	if s == string(engine.CategorySafe) {
		return false
	}
	for _, c := range engine.Categories {
		if s == string(c) {
			return true
		}
	}
	return false
}
