package model

import "time"

// Category identifies a glossary rule category. Categories are applied in
// the fixed order returned by Categories, regardless of file order.
type Category string

const (
	CategoryTerminology     Category = "terminology"      // deprecated terms to canonical forms (K to Q)
	CategoryLexicalRepair   Category = "lexical_repair"   // destructive verb forms to constructive ones
	CategoryTransliteration Category = "transliteration"  // DIN 31636 transliteration variants
)

// Categories returns all rule categories in application order.
func Categories() []Category {
	return []Category{CategoryTerminology, CategoryLexicalRepair, CategoryTransliteration}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Rule maps one deprecated whole-token pattern to its canonical replacement.
// Rules are immutable after load.
type Rule struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

// ChangeRecord documents a single rewrite performed by the normalizer.
// Position is a byte offset into the final rewritten text, so the record
// stays valid for locating the change in the text the caller receives,
// even when later rules shifted earlier replacements around.
type ChangeRecord struct {
	Category    Category  `json:"category"`
	Original    string    `json:"original"`
	Replacement string    `json:"replacement"`
	Position    int       `json:"position"`
	Context     string    `json:"context,omitempty"` // 20 runes each side of the replacement, clamped
	Timestamp   time.Time `json:"timestamp"`
}
