package quiz

const (
	// MinDifficulty and MaxDifficulty bound the adaptive difficulty.
	MinDifficulty = 1
	MaxDifficulty = 5

	// PointsPerLevel is awarded per difficulty level on a correct answer.
	PointsPerLevel = 10
)

// Score applies the adaptive scoring rule to one answer and returns the
// new score and difficulty. A correct answer earns difficulty × PointsPerLevel
// and raises the difficulty; a wrong answer earns nothing and lowers it.
func Score(score, difficulty int, correct bool) (int, int) {
	if correct {
		return score + difficulty*PointsPerLevel, min(difficulty+1, MaxDifficulty)
	}
	return score, max(difficulty-1, MinDifficulty)
}

// MaxScore returns the highest score reachable with n questions.
func MaxScore(n int) int {
	score, difficulty := 0, MinDifficulty
	for range n {
		score, difficulty = Score(score, difficulty, true)
	}
	return score
}
