package ai

import (
	"context"
	"fmt"
	"strings"
)

// TemplateExplainer builds a deterministic explanation from the gap lists.
// It is the default when no text-completion collaborator is configured.
type TemplateExplainer struct{}

func NewTemplateExplainer() TemplateExplainer {
	return TemplateExplainer{}
}

func (TemplateExplainer) Explain(_ context.Context, p Pair) string {
	name := strings.TrimSpace(p.CandidateName)
	if name == "" {
		name = "This member"
	}

	theirs := firstN(p.TheyCanTeach, 2)
	yours := firstN(p.YouCanTeach, 2)

	switch {
	case len(theirs) > 0 && len(yours) > 0:
		return fmt.Sprintf("%s can help you with %s, while you can share %s in return.",
			name, joinNames(theirs), joinNames(yours))
	case len(theirs) > 0:
		return fmt.Sprintf("%s can help you grow in %s.", name, joinNames(theirs))
	case len(yours) > 0:
		return fmt.Sprintf("You could mentor %s in %s.", name, joinNames(yours))
	default:
		return fmt.Sprintf("You and %s share interests with strong potential for collaboration.", name)
	}
}

func firstN(items []string, n int) []string {
	out := make([]string, 0, n)
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}

func joinNames(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return items[0] + " and " + items[1]
	}
}
