package report

import (
	"math"
	"testing"

	"github.com/ezchajim/azilut/internal/model"
)

func scoredMessage(score float64, anchored bool, world model.World, remediation ...string) *model.Message {
	msg := model.NewMessage("content", "purpose", "s", "r")
	msg.Verdict = &model.Verdict{
		Anchored:    anchored,
		Score:       score,
		Remediation: remediation,
		World:       world,
	}
	return msg
}

func TestSummarize_EmptyBatch(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 || summary.Anchored != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.AverageScore != 0 {
		t.Errorf("expected zero average, got %f", summary.AverageScore)
	}
	if len(summary.TopRemediations) != 0 {
		t.Errorf("expected no remediations, got %v", summary.TopRemediations)
	}
}

func TestSummarize_Counts(t *testing.T) {
	messages := []*model.Message{
		scoredMessage(0.9, true, model.WorldAzilut),
		scoredMessage(0.8, true, model.WorldAsija),
		scoredMessage(0.5, false, model.WorldAsija, "state a clear purpose"),
		model.NewMessage("never submitted", "purpose", "s", "r"),
	}

	summary := Summarize(messages)

	if summary.Total != 4 {
		t.Errorf("total: expected 4, got %d", summary.Total)
	}
	if summary.Anchored != 2 {
		t.Errorf("anchored: expected 2, got %d", summary.Anchored)
	}
	// The unscored message is excluded from the average.
	want := (0.9 + 0.8 + 0.5) / 3
	if math.Abs(summary.AverageScore-want) > 1e-9 {
		t.Errorf("average: expected %f, got %f", want, summary.AverageScore)
	}
	if summary.WorldDistribution["asija"] != 2 || summary.WorldDistribution["azilut"] != 1 {
		t.Errorf("world distribution: %v", summary.WorldDistribution)
	}
}

func TestSummarize_RemediationsFromRejectedOnly(t *testing.T) {
	messages := []*model.Message{
		scoredMessage(0.9, true, model.WorldAsija, "should not count"),
		scoredMessage(0.4, false, model.WorldAsija, "state a clear purpose"),
		scoredMessage(0.3, false, model.WorldAsija, "state a clear purpose", "raise the perspective"),
	}

	summary := Summarize(messages)

	if len(summary.TopRemediations) != 2 {
		t.Fatalf("remediations: %v", summary.TopRemediations)
	}
	if summary.TopRemediations[0].Text != "state a clear purpose" || summary.TopRemediations[0].Count != 2 {
		t.Errorf("top remediation: %+v", summary.TopRemediations[0])
	}
	for _, r := range summary.TopRemediations {
		if r.Text == "should not count" {
			t.Error("remediation from an anchored message was counted")
		}
	}
}

func TestRank_OrderAndTies(t *testing.T) {
	counts := map[string]int{
		"charlie": 3,
		"alpha":   1,
		"bravo":   3,
		"delta":   2,
	}

	ranked := rank(counts, 5)

	want := []model.RemediationCount{
		{Text: "bravo", Count: 3},
		{Text: "charlie", Count: 3},
		{Text: "delta", Count: 2},
		{Text: "alpha", Count: 1},
	}
	if len(ranked) != len(want) {
		t.Fatalf("ranked: %v", ranked)
	}
	for i, w := range want {
		if ranked[i] != w {
			t.Errorf("rank %d: expected %+v, got %+v", i, w, ranked[i])
		}
	}
}

func TestRank_Limit(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}
	ranked := rank(counts, 5)
	if len(ranked) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(ranked))
	}
	if ranked[0].Text != "f" || ranked[4].Text != "b" {
		t.Errorf("ranked window wrong: %v", ranked)
	}
}
