// Package rules provides the lexical pattern registry for harm detection.
// All regex rules are compiled once at startup and shared read-only across
// every request.
//
// Design principles:
// - COMPILE ONCE: rules compiled at load, never per-request
// - CATEGORIZED: rules keyed by harm category for combined scoring
// - EXTENSIBLE: extra rules can be merged from the artifact file before the
//   registry is handed to the engine; malformed rule data fails startup
package rules

import (
	"fmt"
	"regexp"

	"github.com/soteria-labs/soteria/pkg/engine"
)

// Rule holds one compiled match rule with its scoring metadata
type Rule struct {
	Name        string             // Stable identifier, surfaced in signal detail
	Regex       *regexp.Regexp     // Compiled matcher (never nil)
	Category    engine.Category    // Harm category this rule contributes to
	Weight      float64            // Per-hit weight contribution (0.0-1.0)
	Description string             // What this rule detects
}

// Registry holds all compiled rules, organized by category.
// Immutable after Build; concurrent reads need no synchronization.
type Registry struct {
	byCategory map[engine.Category][]*Rule
	total      int
}

// Definition is the un-compiled form of a rule, used by the artifact loader.
type Definition struct {
	Name        string  `yaml:"name"`
	Pattern     string  `yaml:"pattern"`
	Category    string  `yaml:"category"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description"`
}

// Builtin returns the registry populated with the built-in rule set.
// Builtin rules are code, so compilation failure is a programmer error.
func Builtin() *Registry {
	r := &Registry{byCategory: make(map[engine.Category][]*Rule)}
	r.registerHateSpeechRules()
	r.registerHarassmentRules()
	r.registerSelfHarmRules()
	r.registerMisinformationRules()
	r.registerSpamRules()
	return r
}

// Build compiles extra definitions on top of the builtin set. A malformed
// definition (bad regex, unknown category, weight out of range) returns an
// error; callers treat it as a fatal startup configuration error.
func Build(extra []Definition) (*Registry, error) {
	r := Builtin()
	for _, def := range extra {
		cat, ok := parseCategory(def.Category)
		if !ok {
			return nil, fmt.Errorf("rule %q: unknown category %q", def.Name, def.Category)
		}
		if def.Weight <= 0 || def.Weight > 1.0 {
			return nil, fmt.Errorf("rule %q: weight %.2f out of range (0, 1]", def.Name, def.Weight)
		}
		compiled, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", def.Name, err)
		}
		r.add(&Rule{
			Name:        def.Name,
			Regex:       compiled,
			Category:    cat,
			Weight:      def.Weight,
			Description: def.Description,
		})
	}
	return r, nil
}

func parseCategory(s string) (engine.Category, bool) {
	for _, cat := range engine.Categories {
		if string(cat) == s {
			return cat, true
		}
	}
	return "", false
}

func (r *Registry) add(rule *Rule) {
	r.byCategory[rule.Category] = append(r.byCategory[rule.Category], rule)
	r.total++
}

// register compiles and adds a builtin rule
func (r *Registry) register(name, pattern string, cat engine.Category, weight float64, description string) {
	r.add(&Rule{
		Name:        name,
		Regex:       regexp.MustCompile(pattern),
		Category:    cat,
		Weight:      weight,
		Description: description,
	})
}

// ByCategory returns all rules for a category. Never nil.
func (r *Registry) ByCategory(cat engine.Category) []*Rule {
	if rules, ok := r.byCategory[cat]; ok {
		return rules
	}
	return []*Rule{}
}

// MatchAll returns every rule that matches the text, across all categories.
// Iteration follows the stable engine.Categories order so scoring stays
// deterministic.
func (r *Registry) MatchAll(text string) []*Rule {
	var matches []*Rule
	for _, cat := range engine.Categories {
		for _, rule := range r.byCategory[cat] {
			if rule.Regex.MatchString(text) {
				matches = append(matches, rule)
			}
		}
	}
	return matches
}

// Match implements engine.RuleMatcher over the compiled registry.
func (r *Registry) Match(text string) []engine.RuleMatch {
	var matches []engine.RuleMatch
	for _, rule := range r.MatchAll(text) {
		matches = append(matches, engine.RuleMatch{
			Name:     rule.Name,
			Category: rule.Category,
			Weight:   rule.Weight,
		})
	}
	return matches
}

// Disable removes rules by name and returns how many were dropped. Lets a
// deployment switch off a noisy rule without rebuilding the binary. Unknown
// names are ignored.
func (r *Registry) Disable(names []string) int {
	if len(names) == 0 {
		return 0
	}
	disabled := make(map[string]bool, len(names))
	for _, n := range names {
		disabled[n] = true
	}
	dropped := 0
	for cat, list := range r.byCategory {
		kept := list[:0]
		for _, rule := range list {
			if disabled[rule.Name] {
				dropped++
				continue
			}
			kept = append(kept, rule)
		}
		r.byCategory[cat] = kept
	}
	r.total -= dropped
	return dropped
}

// TotalRules returns the count of registered rules
func (r *Registry) TotalRules() int {
	return r.total
}

// CategoryCount returns the number of rules in a category
func (r *Registry) CategoryCount(cat engine.Category) int {
	return len(r.byCategory[cat])
}
