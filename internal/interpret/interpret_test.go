package interpret

import (
	"context"
	"testing"

	"github.com/ezchajim/azilut/internal/model"
)

func TestHeuristic_FourResultsInPriorityOrder(t *testing.T) {
	h := NewHeuristic()

	results, err := h.Interpret(context.Background(), "ein schlichter Satz")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	want := []model.Register{
		model.RegisterEsoteric,
		model.RegisterHomiletic,
		model.RegisterAllusive,
		model.RegisterLiteral,
	}
	for i, reg := range want {
		if results[i].Register != reg {
			t.Errorf("result %d: expected %s, got %s", i, reg, results[i].Register)
		}
	}
}

func TestHeuristic_LiteralAlwaysReads(t *testing.T) {
	h := NewHeuristic()

	results, _ := h.Interpret(context.Background(), "ein schlichter Satz ohne alles")
	literal := results[3]
	if literal.IsSentinel {
		t.Error("literal register must read non-empty text")
	}
	if literal.Label == "" {
		t.Error("expected a literal label")
	}

	// The other registers find nothing in plain text.
	for _, r := range results[:3] {
		if !r.IsSentinel {
			t.Errorf("expected sentinel at %s for plain text, got %q", r.Register, r.Label)
		}
		if r.Label != SentinelLabel {
			t.Errorf("expected sentinel label, got %q", r.Label)
		}
	}
}

func TestHeuristic_EmptyTextAllSentinel(t *testing.T) {
	h := NewHeuristic()

	results, _ := h.Interpret(context.Background(), "   ")
	for _, r := range results {
		if !r.IsSentinel {
			t.Errorf("expected sentinel at %s for empty text", r.Register)
		}
	}
	if _, ok := Tag(results); ok {
		t.Error("expected no tag when every register is sentinel")
	}
}

func TestHeuristic_MarkerDetection(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		text string
		want model.Register
	}{
		{"Das Geheimnis bleibt verborgen", model.RegisterEsoteric},
		{"Der Text lehrt uns etwas", model.RegisterHomiletic},
		{"Das deutet auf mehr hin", model.RegisterAllusive},
		{"nur Worte", model.RegisterLiteral},
	}
	for _, tt := range tests {
		results, _ := h.Interpret(context.Background(), tt.text)
		if got := Detected(results); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.text, tt.want, got)
		}
	}
}

func TestTag_HighestPriorityNonSentinel(t *testing.T) {
	results := []model.Interpretation{
		{Register: model.RegisterEsoteric, Label: SentinelLabel, IsSentinel: true},
		{Register: model.RegisterHomiletic, Label: "a teaching"},
		{Register: model.RegisterAllusive, Label: "a hint"},
		{Register: model.RegisterLiteral, Label: "plain"},
	}
	tag, ok := Tag(results)
	if !ok || tag != "homiletic" {
		t.Errorf("expected homiletic tag, got %q (ok=%v)", tag, ok)
	}
}

func TestDetected_AllSentinelFallsBackToLiteral(t *testing.T) {
	var results []model.Interpretation
	for _, reg := range registerOrder {
		results = append(results, sentinel(reg))
	}
	if got := Detected(results); got != model.RegisterLiteral {
		t.Errorf("expected literal fallback, got %s", got)
	}
}

func TestParseRegisterLines(t *testing.T) {
	reply := `esoteric: hidden intent behind the request
homiletic: none
allusive: echoes an earlier exchange
literal: a processing request`

	parsed := parseRegisterLines(reply)
	if parsed[model.RegisterEsoteric] != "hidden intent behind the request" {
		t.Errorf("esoteric label wrong: %q", parsed[model.RegisterEsoteric])
	}
	if parsed[model.RegisterHomiletic] != "none" {
		t.Errorf("homiletic label wrong: %q", parsed[model.RegisterHomiletic])
	}
	if len(parsed) != 4 {
		t.Errorf("expected 4 parsed registers, got %d", len(parsed))
	}
}

func TestNewInterpreter(t *testing.T) {
	if _, err := NewInterpreter(model.InterpretConfig{}); err != nil {
		t.Errorf("default provider: %v", err)
	}
	if _, err := NewInterpreter(model.InterpretConfig{Provider: "heuristic"}); err != nil {
		t.Errorf("heuristic provider: %v", err)
	}
	if _, err := NewInterpreter(model.InterpretConfig{Provider: "openai"}); err == nil {
		t.Error("openai without API key must fail")
	}
	if _, err := NewInterpreter(model.InterpretConfig{Provider: "oracle"}); err == nil {
		t.Error("unknown provider must fail")
	}
}
