// Package interpret classifies text into the four fixed interpretive
// registers. The register set is closed: one handler per register, never
// extended at runtime. Interpretation is decorative metadata attached
// after a message has passed the gate; it must never decide admission.
package interpret

import (
	"context"
	"strings"

	"github.com/ezchajim/azilut/internal/model"
)

// SentinelLabel marks a register at which the text yields nothing.
const SentinelLabel = "nothing revealed at this register"

// Interpreter produces exactly four ranked results, one per register, in
// descending register priority (esoteric first, literal last).
type Interpreter interface {
	Interpret(ctx context.Context, text string) ([]model.Interpretation, error)
}

// registerOrder is the ranked output order.
var registerOrder = []model.Register{
	model.RegisterEsoteric,
	model.RegisterHomiletic,
	model.RegisterAllusive,
	model.RegisterLiteral,
}

// Tag selects the interpretation tag for a message: the highest-priority
// result that is not the sentinel. The second return is false when every
// register came up empty and the tag must stay unset.
func Tag(results []model.Interpretation) (string, bool) {
	for _, r := range results {
		if !r.IsSentinel {
			return r.Register.String(), true
		}
	}
	return "", false
}

// Detected returns the highest-priority non-sentinel register. When no
// register yields anything the text counts as literal, the most surface
// reading.
func Detected(results []model.Interpretation) model.Register {
	for _, r := range results {
		if !r.IsSentinel {
			return r.Register
		}
	}
	return model.RegisterLiteral
}

// Heuristic is the default interpreter. Each register has a fixed marker
// vocabulary; a register without a hit yields the sentinel. The literal
// register always yields a reading for non-empty text.
type Heuristic struct{}

// NewHeuristic creates the marker-driven interpreter.
func NewHeuristic() *Heuristic { return &Heuristic{} }

var registerMarkers = map[model.Register][]string{
	model.RegisterEsoteric: {
		"Geheimnis", "Sod", "verborgen", "אין סוף", "Ejn Sof",
		"mystisch", "secret", "hidden",
	},
	model.RegisterHomiletic: {
		"lehrt", "bedeutet", "Auslegung", "Drasch", "deshalb",
		"teaches", "meaning",
	},
	model.RegisterAllusive: {
		"deutet", "Hinweis", "Andeutung", "Remez", "wie ein",
		"hints", "alludes",
	},
}

// Interpret never fails; the error return satisfies the collaborator
// contract shared with remote implementations.
func (h *Heuristic) Interpret(_ context.Context, text string) ([]model.Interpretation, error) {
	results := make([]model.Interpretation, 0, len(registerOrder))
	for _, reg := range registerOrder {
		results = append(results, h.interpretAt(reg, text))
	}
	return results, nil
}

func (h *Heuristic) interpretAt(reg model.Register, text string) model.Interpretation {
	if strings.TrimSpace(text) == "" {
		return sentinel(reg)
	}
	if reg == model.RegisterLiteral {
		return model.Interpretation{
			Register: reg,
			Label:    "literal reading: " + truncateWords(text, 8),
		}
	}
	lower := strings.ToLower(text)
	for _, marker := range registerMarkers[reg] {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return model.Interpretation{
				Register: reg,
				Label:    reg.String() + " reading via " + marker,
			}
		}
	}
	return sentinel(reg)
}

func sentinel(reg model.Register) model.Interpretation {
	return model.Interpretation{Register: reg, Label: SentinelLabel, IsSentinel: true}
}

func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
