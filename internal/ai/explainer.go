package ai

import "context"

// Pair summarizes one scored (requester, candidate) pairing for explanation.
type Pair struct {
	CandidateName   string
	RequesterSkills []string
	CandidateSkills []string
	TheyCanTeach    []string
	YouCanTeach     []string
	Score           int
}

// Explainer produces a short human-readable rationale for a scored pair.
// Implementations never fail: on any problem they degrade to fallback text.
// The mode (template vs. generative) is fixed at construction time.
type Explainer interface {
	Explain(ctx context.Context, p Pair) string
}
