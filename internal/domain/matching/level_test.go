package matching

import "testing"

func TestLevelScore(t *testing.T) {
	cases := map[string]int{
		"Expert":       4,
		"Advanced":     3,
		"Intermediate": 2,
		"Beginner":     1,
		"":             1,
		"Wizard":       1,
		"expert":       1, // labels are exact-match; the store only writes canonical casing
	}
	for label, want := range cases {
		if got := LevelScore(label); got != want {
			t.Fatalf("LevelScore(%q) = %d, want %d", label, got, want)
		}
	}
}
