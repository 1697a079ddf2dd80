package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	explainTimeout     = 5 * time.Second
	explainMaxTokens   = 60
	explainTemperature = 0.7
)

// TextCompleter is the external text-completion collaborator. The gemini
// package provides the production implementation.
type TextCompleter interface {
	CompleteText(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error)
}

// GenerativeExplainer asks the completion collaborator for a one-sentence
// rationale. A single attempt per pair: any transport or parse failure falls
// back to a generic sentence so one bad call never degrades the whole batch.
type GenerativeExplainer struct {
	completer TextCompleter
	logger    *log.Logger
}

func NewGenerativeExplainer(completer TextCompleter, logger *log.Logger) *GenerativeExplainer {
	return &GenerativeExplainer{completer: completer, logger: logger}
}

func (g *GenerativeExplainer) Explain(ctx context.Context, p Pair) string {
	if g == nil || g.completer == nil {
		return fallbackExplanation(p)
	}

	callCtx, cancel := context.WithTimeout(ctx, explainTimeout)
	defer cancel()

	out, err := g.completer.CompleteText(callCtx, buildPrompt(p), explainMaxTokens, explainTemperature)
	if err != nil {
		if g.logger != nil {
			g.logger.Printf("[Explain] completion failed, using fallback | candidate=%s err=%v", p.CandidateName, err)
		}
		return fallbackExplanation(p)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return fallbackExplanation(p)
	}
	return out
}

func buildPrompt(p Pair) string {
	var b strings.Builder
	b.WriteString("You are matching members of a skill-exchange community.\n")
	fmt.Fprintf(&b, "My skills: %s.\n", strings.Join(p.RequesterSkills, ", "))
	fmt.Fprintf(&b, "%s's skills: %s.\n", p.CandidateName, strings.Join(p.CandidateSkills, ", "))
	fmt.Fprintf(&b, "Compatibility score: %d out of 100.\n", p.Score)
	fmt.Fprintf(&b, "In one friendly sentence of under 20 words, explain why %s would be a great skill-exchange partner for me.", p.CandidateName)
	return b.String()
}

func fallbackExplanation(p Pair) string {
	name := strings.TrimSpace(p.CandidateName)
	if name == "" {
		name = "this member"
	}
	return fmt.Sprintf("You and %s have complementary skills and could learn a lot from each other.", name)
}
