// Package radar defines the data model and configuration for technology
// radar layouts.
//
// A radar plots classified items on a circle: each item carries a category
// (which quadrant it belongs to) and a maturity level (which ring). The
// actual position assignment lives in [github.com/sfeldkamp/quadrant/pkg/radar/layout];
// this package holds the shared types both the engine and the render sinks
// consume.
package radar

import (
	"strings"
	"unicode"
)

// Item is one classified entity to be plotted on the radar.
//
// Name is the identity of the item and the seed source for deterministic
// placement: two radars containing the same item name place it with the
// same jitter. Score, Description and Link are opaque to the layout engine
// and passed through to the render layer unchanged.
type Item struct {
	Name        string  `json:"name" csv:"name"`
	Category    string  `json:"category" csv:"category"`
	Level       string  `json:"level" csv:"level"`
	Score       float64 `json:"score,omitempty" csv:"score"`
	Description string  `json:"description,omitempty" csv:"description"`
	Link        string  `json:"link,omitempty" csv:"link"`
}

// Key returns the normalized grouping key for the item's classification.
func (it Item) Key() string {
	return NormalizeKey(it.Category) + "/" + NormalizeKey(it.Level)
}

// PlacedItem is an Item annotated with its computed position.
//
// X and Y are coordinates in the radar's shared 2D space (origin at the
// configured center). Unresolved marks items whose category or level did
// not match the configured enumerations; such items sit at the exact
// center with zero radius rather than failing the batch.
type PlacedItem struct {
	Item
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// NormalizeKey reduces a category or level label to a stable lookup key:
// lowercase with everything but letters and digits stripped. "Languages &
// Frameworks" and "languages-frameworks" both normalize to
// "languagesframeworks", so data sources don't have to agree on exact
// punctuation with the radar configuration.
func NormalizeKey(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
