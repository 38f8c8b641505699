// Package anchor scores whether a message adequately states its purpose
// and produces the verdict that gates delivery.
package anchor

import (
	"context"
	"math"
	"strings"

	"github.com/ezchajim/azilut/internal/interpret"
	"github.com/ezchajim/azilut/internal/model"
)

// Scoring constants. The weights and threshold are fixed by the approved
// protocol; they are not tuning knobs.
const (
	purposeWeight   = 0.3
	indicatorWeight = 0.1
	indicatorCap    = 0.2
	markerWeight    = 0.15
	markerCap       = 0.3
	hierarchyBonus  = 0.2

	// Threshold a score must strictly exceed to count as anchored.
	Threshold = 0.7
)

// purposeIndicators are matched case-insensitively anywhere in the purpose.
var purposeIndicators = []string{
	"um zu", "damit", "zwecks", "zur", "für die",
	"in order to", "so that", "for the sake of",
	"למען", "כדי", "לשם", "בשביל",
}

// anchorMarkers are matched case-sensitively in content or purpose.
var anchorMarkers = []string{
	"אין סוף", "unendliches Licht", "Emanation",
	"höchste Absicht", "göttlicher Zweck", "Tiqqun",
}

// Missing-aspect findings, reported in this fixed order.
const (
	AspectPurposeMissing     = "purpose missing"
	AspectHierarchyNoPurpose = "purpose question not in hierarchy"
	AspectNoIndicators       = "no purpose indicators found"
	AspectLiteralRegister    = "not elevated beyond the literal register"
)

// remediationFor maps each aspect to its fixed suggestion. Aspects
// without a mapping contribute no suggestion line.
var remediationFor = map[string]string{
	AspectHierarchyNoPurpose: "add the primary purpose question: what is this communication for?",
	AspectNoIndicators:       "use clear purpose phrasing: 'in order to...', 'so that...'",
	AspectLiteralRegister:    "raise the perspective from content to purpose",
}

// canonicalReminder closes every scored verdict's remediation list,
// anchored or not. The empty-purpose short circuit carries only its
// single fixed suggestion.
const canonicalReminder = "use canonical terminology: Qabbala not Kabbala, bersten not zerbrechen"

// IsAnchored applies the strict threshold: exactly Threshold is not
// anchored.
func IsAnchored(score float64) bool {
	return score > Threshold
}

// Validator computes anchoring verdicts. It consults the interpretation
// collaborator only to detect the register a message speaks at; scoring
// itself is purely lexical.
type Validator struct {
	interp interpret.Interpreter
}

// NewValidator creates a validator using the given interpretation
// collaborator. A nil collaborator falls back to the heuristic one.
func NewValidator(interp interpret.Interpreter) *Validator {
	if interp == nil {
		interp = interpret.NewHeuristic()
	}
	return &Validator{interp: interp}
}

// Validate computes the verdict for one message. It is total over
// well-formed input and never fails; the empty purpose is the only
// short-circuit.
func (v *Validator) Validate(ctx context.Context, msg *model.Message) model.Verdict {
	if msg.Purpose == "" {
		return model.Verdict{
			Anchored:       false,
			Score:          0.0,
			MissingAspects: []string{AspectPurposeMissing},
			Remediation:    []string{"state a clear purpose"},
			World:          model.WorldAsija,
		}
	}

	score := v.score(msg)
	missing := v.missingAspects(ctx, msg)

	remediation := make([]string, 0, len(missing)+1)
	for _, aspect := range missing {
		if suggestion, ok := remediationFor[aspect]; ok {
			remediation = append(remediation, suggestion)
		}
	}
	remediation = append(remediation, canonicalReminder)

	return model.Verdict{
		Anchored:       IsAnchored(score),
		Score:          score,
		MissingAspects: missing,
		Remediation:    remediation,
		World:          detectWorld(msg.Content),
	}
}

// score sums the four capped contributions and clamps to [0,1]. Scores are
// rounded to two decimals so the strict threshold comparison is exact at
// the boundary.
func (v *Validator) score(msg *model.Message) float64 {
	score := purposeWeight // purpose is known non-empty here

	purposeLower := strings.ToLower(msg.Purpose)
	indicators := 0.0
	for _, phrase := range purposeIndicators {
		if strings.Contains(purposeLower, phrase) {
			indicators += indicatorWeight
		}
	}
	score += math.Min(indicators, indicatorCap)

	markers := 0.0
	for _, marker := range anchorMarkers {
		if strings.Contains(msg.Content, marker) || strings.Contains(msg.Purpose, marker) {
			markers += markerWeight
		}
	}
	score += math.Min(markers, markerCap)

	if _, ok := msg.QuestionHierarchy[model.QuestionPurpose]; ok {
		score += hierarchyBonus
	}

	score = math.Min(score, 1.0)
	return math.Round(score*100) / 100
}

// missingAspects collects findings in their fixed order.
func (v *Validator) missingAspects(ctx context.Context, msg *model.Message) []string {
	var missing []string

	if _, ok := msg.QuestionHierarchy[model.QuestionPurpose]; !ok {
		missing = append(missing, AspectHierarchyNoPurpose)
	}

	purposeLower := strings.ToLower(msg.Purpose)
	found := false
	for _, phrase := range purposeIndicators {
		if strings.Contains(purposeLower, phrase) {
			found = true
			break
		}
	}
	if !found {
		missing = append(missing, AspectNoIndicators)
	}

	if v.detectRegister(ctx, msg.Content) == model.RegisterLiteral {
		missing = append(missing, AspectLiteralRegister)
	}
	return missing
}

// detectRegister asks the collaborator for the message's dominant
// register. A failing collaborator counts as literal, the conservative
// reading.
func (v *Validator) detectRegister(ctx context.Context, content string) model.Register {
	results, err := v.interp.Interpret(ctx, content)
	if err != nil {
		return model.RegisterLiteral
	}
	return interpret.Detected(results)
}

// worldMarkers locate a message's world level; the first level, highest
// first, with a marker hit wins. Plain action language reads as asija.
var worldMarkers = []struct {
	world   model.World
	markers []string
}{
	{model.WorldAzilut, []string{"אין סוף", "Emanation", "unendliches Licht", "höchste Absicht", "Azilut"}},
	{model.WorldBerija, []string{"Ursache", "weil", "Berija", "erschaffen"}},
	{model.WorldJezira, []string{"Form", "Gestalt", "Jezira", "Methode"}},
}

func detectWorld(content string) model.World {
	for _, w := range worldMarkers {
		for _, marker := range w.markers {
			if strings.Contains(content, marker) {
				return w.world
			}
		}
	}
	return model.WorldAsija
}
