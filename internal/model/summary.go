package model

// RemediationCount pairs a remediation suggestion with how often it was
// issued across a batch of rejected messages.
type RemediationCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Summary is the read-only aggregation over a batch of already-processed
// messages. An empty batch produces the zero Summary, never an error.
type Summary struct {
	Total             int                `json:"total"`
	Anchored          int                `json:"anchored"`
	AverageScore      float64            `json:"average_score"`
	WorldDistribution map[string]int     `json:"world_distribution"`
	TopRemediations   []RemediationCount `json:"top_remediations,omitempty"`
}
