package quiz

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		score, difficulty int
		correct           bool
		wantScore         int
		wantDifficulty    int
	}{
		{0, 1, true, 10, 2},
		{10, 2, true, 30, 3},
		{30, 5, true, 80, 5},
		{30, 3, false, 30, 2},
		{30, 1, false, 30, 1},
	}

	for _, tt := range tests {
		score, difficulty := Score(tt.score, tt.difficulty, tt.correct)
		if score != tt.wantScore || difficulty != tt.wantDifficulty {
			t.Errorf("Score(%d, %d, %v) = (%d, %d), want (%d, %d)",
				tt.score, tt.difficulty, tt.correct, score, difficulty, tt.wantScore, tt.wantDifficulty)
		}
	}
}

func TestMaxScore(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 10},
		{5, 150},
		{10, 400},
	}

	for _, tt := range tests {
		if got := MaxScore(tt.n); got != tt.want {
			t.Errorf("MaxScore(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
