// Package lexicon provides the sentiment lexicon: per-token valence plus the
// negation and intensifier word lists the compositional scorer needs. Loaded
// once at startup and shared read-only across all requests.
package lexicon

import "fmt"

// Lexicon maps tokens to signed valence in -1.0..1.0 and carries the
// modifier word lists. Immutable after Build.
type Lexicon struct {
	valence      map[string]float64
	negations    map[string]struct{}
	intensifiers map[string]float64 // token -> scaling multiplier (>1 amplifies)
}

// Overlay is the un-validated form merged from the artifact file.
type Overlay struct {
	Valence      map[string]float64 `yaml:"valence"`
	Negations    []string           `yaml:"negations"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// Valence returns the signed valence of a token and whether it is known.
func (l *Lexicon) Valence(token string) (float64, bool) {
	v, ok := l.valence[token]
	return v, ok
}

// IsNegation reports whether a token flips adjacent valence.
func (l *Lexicon) IsNegation(token string) bool {
	_, ok := l.negations[token]
	return ok
}

// Intensifier returns the scaling multiplier for a token (0, false if none).
func (l *Lexicon) Intensifier(token string) (float64, bool) {
	m, ok := l.intensifiers[token]
	return m, ok
}

// Size returns the number of valence entries.
func (l *Lexicon) Size() int {
	return len(l.valence)
}

// Build merges an overlay onto the builtin lexicon. Out-of-range valence or
// non-positive multipliers are configuration errors, fatal at startup.
func Build(overlay *Overlay) (*Lexicon, error) {
	l := Builtin()
	if overlay == nil {
		return l, nil
	}
	for token, v := range overlay.Valence {
		if v < -1.0 || v > 1.0 {
			return nil, fmt.Errorf("lexicon token %q: valence %.2f out of range [-1, 1]", token, v)
		}
		l.valence[token] = v
	}
	for _, token := range overlay.Negations {
		l.negations[token] = struct{}{}
	}
	for token, m := range overlay.Intensifiers {
		if m <= 0 {
			return nil, fmt.Errorf("lexicon intensifier %q: multiplier %.2f must be positive", token, m)
		}
		l.intensifiers[token] = m
	}
	return l, nil
}

// Builtin returns a fresh copy of the built-in lexicon.
func Builtin() *Lexicon {
	l := &Lexicon{
		valence:      make(map[string]float64, len(builtinValence)),
		negations:    make(map[string]struct{}, len(builtinNegations)),
		intensifiers: make(map[string]float64, len(builtinIntensifiers)),
	}
	for k, v := range builtinValence {
		l.valence[k] = v
	}
	for _, n := range builtinNegations {
		l.negations[n] = struct{}{}
	}
	for k, v := range builtinIntensifiers {
		l.intensifiers[k] = v
	}
	return l
}

// builtinValence covers the high-frequency emotional vocabulary of short
// social text. Values follow the usual lexicon convention: +-0.3 mild,
// +-0.6 strong, +-0.9 extreme.
var builtinValence = map[string]float64{
	// Positive
	"love": 0.80, "loved": 0.80, "loves": 0.80, "loving": 0.75,
	"adore": 0.80, "amazing": 0.70, "awesome": 0.70, "beautiful": 0.65,
	"best": 0.65, "brilliant": 0.70, "calm": 0.35, "caring": 0.55,
	"delight": 0.65, "enjoy": 0.55, "excellent": 0.70, "fantastic": 0.70,
	"friend": 0.40, "fun": 0.50, "glad": 0.50, "good": 0.50,
	"grateful": 0.60, "great": 0.60, "happy": 0.65, "helpful": 0.50,
	"hope": 0.45, "joy": 0.70, "kind": 0.55, "like": 0.40,
	"lovely": 0.65, "nice": 0.45, "peaceful": 0.50, "perfect": 0.70,
	"pleasant": 0.50, "proud": 0.55, "respect": 0.50, "safe": 0.40,
	"smart": 0.50, "sunny": 0.40, "sweet": 0.50, "thank": 0.55,
	"thanks": 0.55, "welcome": 0.40, "wonderful": 0.70, "worthy": 0.50,

	// Negative
	"angry": -0.55, "annoying": -0.45, "awful": -0.65, "bad": -0.50,
	"cruel": -0.65, "despise": -0.75, "destroy": -0.60, "die": -0.75,
	"disappear": -0.45, "disgusting": -0.70, "dumb": -0.50, "evil": -0.70,
	"fail": -0.50, "failure": -0.55, "fear": -0.50, "garbage": -0.55,
	"hate": -0.80, "hated": -0.80, "hates": -0.80, "horrible": -0.70,
	"hurt": -0.60, "idiot": -0.65, "kill": -0.85, "loser": -0.60,
	"mad": -0.45, "mean": -0.40, "miserable": -0.65, "moron": -0.65,
	"nasty": -0.55, "pathetic": -0.60, "sad": -0.50, "scum": -0.75,
	"stupid": -0.60, "terrible": -0.65, "threat": -0.55, "trash": -0.50,
	"ugly": -0.55, "useless": -0.55, "vermin": -0.75, "worst": -0.65,
	"worthless": -0.70, "wrong": -0.35,
}

var builtinNegations = []string{
	"not", "no", "never", "neither", "nobody", "none", "nor", "nothing",
	"cannot", "cant", "can't", "dont", "don't", "doesnt", "doesn't",
	"didnt", "didn't", "isnt", "isn't", "wasnt", "wasn't", "wont", "won't",
	"wouldnt", "wouldn't", "shouldnt", "shouldn't", "aint", "ain't",
	"hardly", "without",
}

var builtinIntensifiers = map[string]float64{
	"absolutely": 1.35, "completely": 1.30, "extremely": 1.40,
	"incredibly": 1.35, "really": 1.20, "so": 1.15, "super": 1.25,
	"totally": 1.30, "truly": 1.20, "utterly": 1.35, "very": 1.25,
	// Dampeners scale below 1.0
	"kinda": 0.80, "slightly": 0.75, "somewhat": 0.80,
	"barely": 0.60, "almost": 0.85,
}
