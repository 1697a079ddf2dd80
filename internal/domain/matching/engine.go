package matching

import (
	"github.com/google/uuid"
)

// Scoring weights. The three sub-scores are independently capped so the
// total stays within 0..100 before the final clamp.
const (
	complementarityPerGap = 10
	complementarityMax    = 40

	mentorshipWideGap   = 15
	mentorshipNarrowGap = 10
	mentorshipMax       = 30

	sharedInterestPerSkill = 10
	sharedInterestMax      = 30

	// Gap lists are display-truncated regardless of how many skills differ.
	teachListLimit = 5
)

type SkillEntry struct {
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel string
}

type Result struct {
	Score int

	// TheyCanTeach holds skill names the candidate has and the requester
	// lacks; YouCanTeach is the converse. Both keep source iteration order
	// and are capped at teachListLimit entries.
	TheyCanTeach []string
	YouCanTeach  []string
}

// Score computes the pairwise compatibility between a requester's skill set
// and a candidate's. Skills are matched by name, not ID: two catalog rows
// sharing a display name are deliberately treated as the same skill. Entries
// with a blank name are skipped. Empty sets on either side score 0.
func Score(requesterSkills, candidateSkills []SkillEntry) Result {
	requesterByName := levelsByName(requesterSkills)
	candidateByName := levelsByName(candidateSkills)

	if len(requesterByName) == 0 || len(candidateByName) == 0 {
		return Result{Score: 0, TheyCanTeach: []string{}, YouCanTeach: []string{}}
	}

	theyCanTeach := make([]string, 0)
	for _, e := range candidateSkills {
		if e.SkillName == "" {
			continue
		}
		if _, ok := requesterByName[e.SkillName]; !ok {
			theyCanTeach = append(theyCanTeach, e.SkillName)
		}
	}

	youCanTeach := make([]string, 0)
	for _, e := range requesterSkills {
		if e.SkillName == "" {
			continue
		}
		if _, ok := candidateByName[e.SkillName]; !ok {
			youCanTeach = append(youCanTeach, e.SkillName)
		}
	}

	complementarity := clampInt((len(theyCanTeach)+len(youCanTeach))*complementarityPerGap, 0, complementarityMax)

	mentorship := 0
	shared := 0
	for name, candidateLevel := range candidateByName {
		requesterLevel, ok := requesterByName[name]
		if !ok {
			continue
		}
		shared++

		diff := candidateLevel - requesterLevel
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff >= 2:
			mentorship += mentorshipWideGap
		case diff == 1:
			mentorship += mentorshipNarrowGap
		}
	}
	mentorship = clampInt(mentorship, 0, mentorshipMax)

	sharedInterest := clampInt(shared*sharedInterestPerSkill, 0, sharedInterestMax)

	return Result{
		Score:        clampInt(complementarity+mentorship+sharedInterest, 0, 100),
		TheyCanTeach: truncate(theyCanTeach, teachListLimit),
		YouCanTeach:  truncate(youCanTeach, teachListLimit),
	}
}

// levelsByName indexes entries by skill name. Duplicate names collapse to
// the last entry, matching the one-entry-per-skill invariant of the store.
func levelsByName(entries []SkillEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.SkillName == "" {
			continue
		}
		out[e.SkillName] = LevelScore(e.ProficiencyLevel)
	}
	return out
}

func truncate(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
