package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"skillswap/internal/ai"
	"skillswap/internal/domain/matching"
	"skillswap/internal/pkg/pool"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const (
	// Candidates must be strictly above this to appear in results.
	qualifyingThreshold = 20

	maxMatches = 10

	explainWorkers = 4

	matchCacheKeyPrefix  = "matches:"
	matchCacheKeyPattern = "matches:*"
)

const (
	msgNoOwnSkills = "Add some skills to your profile to get match recommendations."
	msgNoMatches   = "No matches yet. Check back as more members join and add skills."
)

// MatchCache stores computed match snapshots. Implementations are expected to
// degrade to no-ops when the backing store is down.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type MatchItem struct {
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Bio          string    `json:"bio,omitempty"`
	MatchScore   int       `json:"match_score"`
	TheyCanTeach []string  `json:"they_can_teach"`
	YouCanTeach  []string  `json:"you_can_teach"`
	Explanation  string    `json:"explanation"`
}

type MatchList struct {
	Matches []MatchItem `json:"matches"`

	// Total counts every qualifying candidate, not just the returned page.
	Total int `json:"total"`

	// Message carries guidance for degenerate results (no skills, no matches).
	Message string `json:"message,omitempty"`
}

type MatchUsecase interface {
	GetMatches(ctx context.Context, userID uuid.UUID) (MatchList, error)
}

type Matching struct {
	profiles  repository.MatchProfileRepository
	explainer ai.Explainer
	cache     MatchCache
	logger    *log.Logger
}

func NewMatchUsecase(profiles repository.MatchProfileRepository, explainer ai.Explainer, cache MatchCache, logger *log.Logger) *Matching {
	return &Matching{profiles: profiles, explainer: explainer, cache: cache, logger: logger}
}

// GetMatches ranks every other member against the requester and returns the
// top slice with explanations. A bad candidate never sinks the whole request;
// failing to load the requester or the candidate pool does.
func (m *Matching) GetMatches(ctx context.Context, userID uuid.UUID) (MatchList, error) {
	if userID == uuid.Nil {
		return MatchList{}, ErrUnauthorized
	}

	cacheKey := matchCacheKeyPrefix + userID.String()
	if m.cache != nil {
		var cached MatchList
		if hit, err := m.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	requester, err := m.profiles.FindProfileWithSkills(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return MatchList{}, ErrUserNotFound
		}
		m.logf("[Match] load requester failed user=%s err=%v", userID, err)
		return MatchList{}, ErrInternal
	}

	if len(requester.Skills) == 0 {
		return MatchList{Matches: []MatchItem{}, Total: 0, Message: msgNoOwnSkills}, nil
	}

	candidates, err := m.profiles.ListOtherProfilesWithSkills(ctx, userID)
	if err != nil {
		m.logf("[Match] load candidates failed user=%s err=%v", userID, err)
		return MatchList{}, ErrInternal
	}

	requesterEntries := toSkillEntries(requester.Skills)

	type scored struct {
		item      MatchItem
		candidate repository.ProfileWithSkills
		result    matching.Result
	}

	qualifying := make([]scored, 0)
	for _, c := range candidates {
		if len(c.Skills) == 0 {
			continue
		}
		res := matching.Score(requesterEntries, toSkillEntries(c.Skills))
		if res.Score <= qualifyingThreshold {
			continue
		}
		qualifying = append(qualifying, scored{
			item: MatchItem{
				UserID:       c.UserID,
				DisplayName:  c.DisplayName,
				Bio:          c.Bio,
				MatchScore:   res.Score,
				TheyCanTeach: res.TheyCanTeach,
				YouCanTeach:  res.YouCanTeach,
			},
			candidate: c,
			result:    res,
		})
	}

	if len(qualifying) == 0 {
		return MatchList{Matches: []MatchItem{}, Total: 0, Message: msgNoMatches}, nil
	}

	// Explain every qualifying pair before ranking. Workers write to their
	// own index, so no locking is needed.
	requesterNames := skillNames(requester.Skills)
	p := pool.New(explainWorkers, len(qualifying))
	p.Start(ctx)
	for i := range qualifying {
		i := i
		q := qualifying[i]
		p.Submit(func(ctx context.Context) {
			qualifying[i].item.Explanation = m.explainer.Explain(ctx, ai.Pair{
				CandidateName:   q.candidate.DisplayName,
				RequesterSkills: requesterNames,
				CandidateSkills: skillNames(q.candidate.Skills),
				TheyCanTeach:    q.result.TheyCanTeach,
				YouCanTeach:     q.result.YouCanTeach,
				Score:           q.result.Score,
			})
		})
	}
	p.Wait()

	// Stable sort keeps registration order between equal scores.
	sort.SliceStable(qualifying, func(a, b int) bool {
		return qualifying[a].item.MatchScore > qualifying[b].item.MatchScore
	})

	total := len(qualifying)
	if len(qualifying) > maxMatches {
		qualifying = qualifying[:maxMatches]
	}

	items := make([]MatchItem, 0, len(qualifying))
	for _, q := range qualifying {
		items = append(items, q.item)
	}

	out := MatchList{Matches: items, Total: total}
	if m.cache != nil {
		if err := m.cache.SetJSON(ctx, cacheKey, out, 0); err != nil {
			m.logf("[Match] cache set failed key=%s err=%v", cacheKey, err)
		}
	}
	return out, nil
}

func (m *Matching) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

func toSkillEntries(skills []repository.UserSkill) []matching.SkillEntry {
	out := make([]matching.SkillEntry, 0, len(skills))
	for _, s := range skills {
		out = append(out, matching.SkillEntry{
			SkillID:          s.SkillID,
			SkillName:        s.SkillName,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}
	return out
}

func skillNames(skills []repository.UserSkill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.SkillName)
	}
	return out
}
