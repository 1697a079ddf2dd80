package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"skillswap/internal/ai"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockMatchProfileRepo struct {
	requester    repository.ProfileWithSkills
	requesterErr error
	candidates   []repository.ProfileWithSkills
	candidateErr error
}

func (m *mockMatchProfileRepo) FindProfileWithSkills(ctx context.Context, userID uuid.UUID) (repository.ProfileWithSkills, error) {
	if m.requesterErr != nil {
		return repository.ProfileWithSkills{}, m.requesterErr
	}
	return m.requester, nil
}

func (m *mockMatchProfileRepo) ListOtherProfilesWithSkills(ctx context.Context, excludeUserID uuid.UUID) ([]repository.ProfileWithSkills, error) {
	if m.candidateErr != nil {
		return nil, m.candidateErr
	}
	return m.candidates, nil
}

type mockExplainer struct {
	mu    sync.Mutex
	calls int
	text  string
}

func (m *mockExplainer) Explain(ctx context.Context, p ai.Pair) string {
	m.mu.Lock()
	m.calls += 1
	m.mu.Unlock()
	if m.text != "" {
		return m.text
	}
	return "You and " + p.CandidateName + " complement each other."
}

type mockMatchCache struct {
	mu      sync.Mutex
	stored  map[string]MatchList
	getErr  error
	setErr  error
	deleted []string
}

func newMockMatchCache() *mockMatchCache {
	return &mockMatchCache{stored: make(map[string]MatchList)}
}

func (m *mockMatchCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	v, ok := m.stored[key]
	if !ok {
		return false, nil
	}
	if dst, ok := out.(*MatchList); ok {
		*dst = v
	}
	return true, nil
}

func (m *mockMatchCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if v, ok := value.(MatchList); ok {
		m.stored[key] = v
	}
	return nil
}

func (m *mockMatchCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	return nil
}

func skillRow(userID uuid.UUID, name, level string) repository.UserSkill {
	return repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          uuid.New(),
		SkillName:        name,
		ProficiencyLevel: level,
	}
}

func candidateProfile(name string, skills ...repository.UserSkill) repository.ProfileWithSkills {
	return repository.ProfileWithSkills{
		UserID:      uuid.New(),
		DisplayName: name,
		Skills:      skills,
	}
}

func TestGetMatchesRequesterNotFound(t *testing.T) {
	uc := NewMatchUsecase(&mockMatchProfileRepo{requesterErr: repository.ErrUserNotFound}, &mockExplainer{}, nil, nil)

	_, err := uc.GetMatches(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetMatchesNilUserID(t *testing.T) {
	uc := NewMatchUsecase(&mockMatchProfileRepo{}, &mockExplainer{}, nil, nil)

	_, err := uc.GetMatches(context.Background(), uuid.Nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetMatchesNoOwnSkills(t *testing.T) {
	userID := uuid.New()
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{UserID: userID, DisplayName: "Alice"},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Bob", skillRow(uuid.New(), "Go", "Expert")),
		},
	}
	explainer := &mockExplainer{}
	uc := NewMatchUsecase(repo, explainer, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 0 || got.Total != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if got.Message == "" {
		t.Fatalf("expected guidance message for skill-less requester")
	}
	if explainer.calls != 0 {
		t.Fatalf("explainer should not run for empty result, got %d calls", explainer.calls)
	}
}

func TestGetMatchesCandidateFetchFailure(t *testing.T) {
	userID := uuid.New()
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidateErr: errors.New("db down"),
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, nil, nil)

	_, err := uc.GetMatches(context.Background(), userID)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetMatchesSkipsSkillLessCandidates(t *testing.T) {
	userID := uuid.New()
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Empty"),
			candidateProfile("Bob",
				skillRow(uuid.New(), "Rust", "Advanced"),
				skillRow(uuid.New(), "Python", "Advanced"),
				skillRow(uuid.New(), "SQL", "Advanced"),
			),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got.Matches))
	}
	if got.Matches[0].DisplayName != "Bob" {
		t.Fatalf("expected Bob, got %s", got.Matches[0].DisplayName)
	}
}

func TestGetMatchesThresholdIsStrict(t *testing.T) {
	userID := uuid.New()
	// Two disjoint single skills: complementarity 2*10 = 20, no mentorship,
	// no shared interest. Exactly 20 must not qualify.
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Borderline", skillRow(uuid.New(), "Rust", "Expert")),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 0 || got.Total != 0 {
		t.Fatalf("score of exactly 20 should not qualify, got %+v", got)
	}
	if got.Message == "" {
		t.Fatalf("expected no-matches message")
	}
}

func TestGetMatchesRankingAndTieBreak(t *testing.T) {
	userID := uuid.New()
	// Strong shares Go (gap 3) and teaches two new skills: 20 + 15 + 10 = 45.
	// The tie pair each score 40 (four disjoint skills); their relative order
	// must follow enumeration order.
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Beginner")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("TieFirst",
				skillRow(uuid.New(), "Drawing", "Beginner"),
				skillRow(uuid.New(), "Piano", "Beginner"),
				skillRow(uuid.New(), "Chess", "Beginner"),
			),
			candidateProfile("Strong",
				skillRow(uuid.New(), "Go", "Expert"),
				skillRow(uuid.New(), "Rust", "Expert"),
				skillRow(uuid.New(), "SQL", "Expert"),
			),
			candidateProfile("TieSecond",
				skillRow(uuid.New(), "Cooking", "Beginner"),
				skillRow(uuid.New(), "Sewing", "Beginner"),
				skillRow(uuid.New(), "Origami", "Beginner"),
			),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got.Matches))
	}
	names := []string{got.Matches[0].DisplayName, got.Matches[1].DisplayName, got.Matches[2].DisplayName}
	want := []string{"Strong", "TieFirst", "TieSecond"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
	if got.Matches[1].MatchScore != got.Matches[2].MatchScore {
		t.Fatalf("tie pair should score equally, got %d and %d", got.Matches[1].MatchScore, got.Matches[2].MatchScore)
	}
}

func TestGetMatchesTruncatesButCountsAll(t *testing.T) {
	userID := uuid.New()
	candidates := make([]repository.ProfileWithSkills, 0, 14)
	for i := 0; i < 14; i++ {
		candidates = append(candidates, candidateProfile(
			fmt.Sprintf("Candidate %d", i),
			skillRow(uuid.New(), fmt.Sprintf("Skill A%d", i), "Advanced"),
			skillRow(uuid.New(), fmt.Sprintf("Skill B%d", i), "Advanced"),
			skillRow(uuid.New(), fmt.Sprintf("Skill C%d", i), "Advanced"),
		))
	}
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: candidates,
	}
	explainer := &mockExplainer{}
	uc := NewMatchUsecase(repo, explainer, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != maxMatches {
		t.Fatalf("expected %d matches, got %d", maxMatches, len(got.Matches))
	}
	if got.Total != 14 {
		t.Fatalf("expected total 14, got %d", got.Total)
	}
	// Every qualifying candidate is explained, not just the returned page.
	if explainer.calls != 14 {
		t.Fatalf("expected 14 explanations, got %d", explainer.calls)
	}
}

func TestGetMatchesExplanationsAttached(t *testing.T) {
	userID := uuid.New()
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Bob",
				skillRow(uuid.New(), "Rust", "Advanced"),
				skillRow(uuid.New(), "Python", "Advanced"),
				skillRow(uuid.New(), "SQL", "Advanced"),
			),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{text: "great fit"}, nil, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got.Matches))
	}
	if got.Matches[0].Explanation != "great fit" {
		t.Fatalf("expected explanation attached, got %q", got.Matches[0].Explanation)
	}
}

func TestGetMatchesServesFromCache(t *testing.T) {
	userID := uuid.New()
	cache := newMockMatchCache()
	cache.stored[matchCacheKeyPrefix+userID.String()] = MatchList{
		Matches: []MatchItem{{DisplayName: "Cached", MatchScore: 42}},
		Total:   1,
	}
	repo := &mockMatchProfileRepo{requesterErr: errors.New("must not hit db")}
	uc := NewMatchUsecase(repo, &mockExplainer{}, cache, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 1 || got.Matches[0].DisplayName != "Cached" {
		t.Fatalf("expected cached snapshot, got %+v", got)
	}
}

func TestGetMatchesStoresSnapshot(t *testing.T) {
	userID := uuid.New()
	cache := newMockMatchCache()
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Bob",
				skillRow(uuid.New(), "Rust", "Advanced"),
				skillRow(uuid.New(), "Python", "Advanced"),
				skillRow(uuid.New(), "SQL", "Advanced"),
			),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, cache, nil)

	if _, err := uc.GetMatches(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.stored[matchCacheKeyPrefix+userID.String()]; !ok {
		t.Fatalf("expected snapshot cached under user key")
	}
}

func TestGetMatchesCacheFailureIsNotFatal(t *testing.T) {
	userID := uuid.New()
	cache := newMockMatchCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	repo := &mockMatchProfileRepo{
		requester: repository.ProfileWithSkills{
			UserID: userID,
			Skills: []repository.UserSkill{skillRow(userID, "Go", "Expert")},
		},
		candidates: []repository.ProfileWithSkills{
			candidateProfile("Bob",
				skillRow(uuid.New(), "Rust", "Advanced"),
				skillRow(uuid.New(), "Python", "Advanced"),
				skillRow(uuid.New(), "SQL", "Advanced"),
			),
		},
	}
	uc := NewMatchUsecase(repo, &mockExplainer{}, cache, nil)

	got, err := uc.GetMatches(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Matches) != 1 {
		t.Fatalf("expected computed matches despite cache failure, got %+v", got)
	}
}
