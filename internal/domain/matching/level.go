package matching

// Numeric ranks for the proficiency labels.
const (
	rankBeginner     = 1
	rankIntermediate = 2
	rankAdvanced     = 3
	rankExpert       = 4
)

// LevelScore maps a proficiency label to its numeric rank. Unknown labels
// rank as Beginner rather than failing, so a malformed entry can still be
// scored.
func LevelScore(label string) int {
	switch label {
	case "Expert":
		return rankExpert
	case "Advanced":
		return rankAdvanced
	case "Intermediate":
		return rankIntermediate
	case "Beginner":
		return rankBeginner
	default:
		return rankBeginner
	}
}
