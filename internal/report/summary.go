// Package report aggregates already-processed messages into a batch
// summary. Read-only; an empty batch is a defined result, not an error.
package report

import (
	"sort"

	"github.com/ezchajim/azilut/internal/model"
)

// topRemediations caps the remediation frequency list.
const topRemediations = 5

// Summarize aggregates a batch of messages. Only messages carrying a
// verdict contribute to the anchored count and average; remediation counts
// come from rejected messages only.
func Summarize(messages []*model.Message) model.Summary {
	summary := model.Summary{
		Total:             len(messages),
		WorldDistribution: make(map[string]int),
	}

	scored := 0
	scoreSum := 0.0
	remediationCounts := make(map[string]int)

	for _, msg := range messages {
		if msg.Verdict == nil {
			continue
		}
		scored++
		scoreSum += msg.Verdict.Score
		if msg.Verdict.Anchored {
			summary.Anchored++
		} else {
			for _, suggestion := range msg.Verdict.Remediation {
				remediationCounts[suggestion]++
			}
		}
		summary.WorldDistribution[msg.Verdict.World.String()]++
	}

	if scored > 0 {
		summary.AverageScore = scoreSum / float64(scored)
	}
	summary.TopRemediations = rank(remediationCounts, topRemediations)
	return summary
}

// rank orders remediation counts descending, ties broken lexicographically
// so the result is deterministic.
func rank(counts map[string]int, limit int) []model.RemediationCount {
	if len(counts) == 0 {
		return nil
	}
	ranked := make([]model.RemediationCount, 0, len(counts))
	for text, count := range counts {
		ranked = append(ranked, model.RemediationCount{Text: text, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Text < ranked[j].Text
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
