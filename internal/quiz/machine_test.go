package quiz

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Text: "Which one is right?",
			Options: []Option{
				{Text: "wrong", IsCorrect: false},
				{Text: "right", IsCorrect: true},
				{Text: "also wrong", IsCorrect: false},
			},
			Difficulty: i%5 + 1,
		}
	}
	return qs
}

func loadedSession(t *testing.T, n int) Session {
	t.Helper()
	s := NewSession("test-session")
	s, cmd := HandleEvent(s, Start{})
	if cmd.Effect != EffectLoadQuestions {
		t.Fatalf("Start effect = %v, want EffectLoadQuestions", cmd.Effect)
	}
	s, cmd = HandleEvent(s, QuestionsLoaded{Questions: testQuestions(n)})
	if n > 0 && cmd.Render != RenderQuestion {
		t.Fatalf("QuestionsLoaded render = %v, want RenderQuestion", cmd.Render)
	}
	return s
}

func answer(s Session, correct bool) (Session, Command) {
	idx := 0
	if correct {
		idx = 1
	}
	s, _ = HandleEvent(s, OptionSelected{Index: idx})
	return HandleEvent(s, Advance{})
}

func TestNewSession(t *testing.T) {
	s := NewSession("abc")
	if s.Phase != PhaseLoading {
		t.Errorf("Phase = %v, want loading", s.Phase)
	}
	if s.Difficulty != MinDifficulty {
		t.Errorf("Difficulty = %d, want %d", s.Difficulty, MinDifficulty)
	}
	if s.Selected != NoSelection {
		t.Errorf("Selected = %d, want NoSelection", s.Selected)
	}
	if s.CanAdvance() {
		t.Error("expected advance control disabled before loading")
	}
}

func TestLoad_PresentsFirstQuestion(t *testing.T) {
	s := loadedSession(t, 3)
	if s.Phase != PhasePresenting {
		t.Fatalf("Phase = %v, want presenting", s.Phase)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if s.Current() == nil {
		t.Fatal("expected a current question")
	}
	if s.CanAdvance() {
		t.Error("advance control should start disabled")
	}
}

func TestLoad_EmptySetCompletesImmediately(t *testing.T) {
	s := loadedSession(t, 0)
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want complete", s.Phase)
	}
}

func TestLoadFailed_Halts(t *testing.T) {
	s := NewSession("x")
	s, _ = HandleEvent(s, Start{})
	s, cmd := HandleEvent(s, LoadFailed{Err: errors.New("HTTP 500")})

	if s.Phase != PhaseHalted {
		t.Fatalf("Phase = %v, want halted", s.Phase)
	}
	if cmd.Render != RenderHalted {
		t.Errorf("Render = %v, want RenderHalted", cmd.Render)
	}
	var loadErr *LoadError
	if !errors.As(cmd.Notice, &loadErr) {
		t.Fatalf("Notice = %v, want *LoadError", cmd.Notice)
	}
	if UserMessage(cmd.Notice) != "Could not load the question data." {
		t.Errorf("UserMessage = %q", UserMessage(cmd.Notice))
	}

	// Halted is terminal: even a late question set is ignored.
	s, cmd = HandleEvent(s, QuestionsLoaded{Questions: testQuestions(2)})
	if s.Phase != PhaseHalted || s.Current() != nil {
		t.Error("expected halted session to ignore QuestionsLoaded")
	}
	if cmd.Render != RenderNone {
		t.Errorf("Render = %v, want RenderNone", cmd.Render)
	}
}

func TestSelect_EnablesAdvance(t *testing.T) {
	s := loadedSession(t, 2)
	s, cmd := HandleEvent(s, OptionSelected{Index: 2})
	if !s.CanAdvance() {
		t.Error("expected advance enabled after selection")
	}
	if s.Selected != 2 {
		t.Errorf("Selected = %d, want 2", s.Selected)
	}
	if cmd.Render != RenderQuestion || cmd.Effect != EffectNone || cmd.Notice != nil {
		t.Errorf("unexpected command %+v", cmd)
	}
	if s.Index != 0 || s.Score != 0 {
		t.Error("selection must not change index or score")
	}
}

func TestSelect_OutOfRangeIgnored(t *testing.T) {
	s := loadedSession(t, 1)
	s, _ = HandleEvent(s, OptionSelected{Index: 7})
	if s.Selected != NoSelection {
		t.Errorf("Selected = %d, want NoSelection", s.Selected)
	}
}

func TestAdvance_WithoutSelectionRejected(t *testing.T) {
	s := loadedSession(t, 3)
	before := s
	s, cmd := HandleEvent(s, Advance{})

	if !errors.Is(cmd.Notice, ErrNoSelection) {
		t.Fatalf("Notice = %v, want ErrNoSelection", cmd.Notice)
	}
	if s.Index != before.Index || s.Score != before.Score || s.Difficulty != before.Difficulty {
		t.Error("rejected advance changed the session")
	}
	if s.Phase != PhasePresenting {
		t.Errorf("Phase = %v, want presenting", s.Phase)
	}
}

func TestAdvance_AdaptiveScoring(t *testing.T) {
	s := loadedSession(t, 4)

	steps := []struct {
		correct    bool
		score      int
		difficulty int
	}{
		{true, 10, 2},
		{true, 30, 3},
		{false, 30, 2},
		{true, 50, 3},
	}

	for i, st := range steps {
		s, _ = answer(s, st.correct)
		if s.Score != st.score {
			t.Errorf("step %d: Score = %d, want %d", i, s.Score, st.score)
		}
		if s.Difficulty != st.difficulty {
			t.Errorf("step %d: Difficulty = %d, want %d", i, s.Difficulty, st.difficulty)
		}
		if s.Index != i+1 {
			t.Errorf("step %d: Index = %d, want %d", i, s.Index, i+1)
		}
	}
	if s.Correct != 3 {
		t.Errorf("Correct = %d, want 3", s.Correct)
	}
}

func TestAdvance_ResetsSelection(t *testing.T) {
	s := loadedSession(t, 3)
	s, _ = answer(s, true)
	if s.Selected != NoSelection {
		t.Errorf("Selected = %d, want NoSelection", s.Selected)
	}
	if s.CanAdvance() {
		t.Error("advance control should be disabled on the next question")
	}
}

func TestAdvance_TerminatesAfterAllQuestions(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		s := loadedSession(t, n)
		var cmd Command
		for i := 0; i < n; i++ {
			if s.Phase != PhasePresenting {
				t.Fatalf("n=%d: Phase = %v before answer %d", n, s.Phase, i)
			}
			s, cmd = answer(s, i%2 == 0)
		}
		if s.Phase != PhaseComplete {
			t.Errorf("n=%d: Phase = %v, want complete", n, s.Phase)
		}
		if cmd.Render != RenderDiagnose {
			t.Errorf("n=%d: Render = %v, want RenderDiagnose", n, cmd.Render)
		}
		if s.Index != n {
			t.Errorf("n=%d: Index = %d, want %d", n, s.Index, n)
		}

		// Further advances are ignored once complete.
		after, _ := HandleEvent(s, Advance{})
		if after.Index != n {
			t.Errorf("n=%d: Index moved after completion", n)
		}
	}
}

func TestInvariants_RandomSessions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for run := 0; run < 200; run++ {
		n := rng.IntN(15)
		s := loadedSession(t, n)
		prevScore, prevIndex := s.Score, s.Index

		for steps := 0; steps < 40; steps++ {
			var ev Event
			switch rng.IntN(3) {
			case 0:
				ev = OptionSelected{Index: rng.IntN(4)}
			default:
				ev = Advance{}
			}
			s, _ = HandleEvent(s, ev)

			if s.Score < 0 || s.Score < prevScore {
				t.Fatalf("run %d: score went from %d to %d", run, prevScore, s.Score)
			}
			if s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty {
				t.Fatalf("run %d: difficulty %d out of bounds", run, s.Difficulty)
			}
			if s.Index < prevIndex || s.Index > prevIndex+1 {
				t.Fatalf("run %d: index went from %d to %d", run, prevIndex, s.Index)
			}
			prevScore, prevIndex = s.Score, s.Index
		}
	}
}

func completedSession(t *testing.T) Session {
	t.Helper()
	s := loadedSession(t, 2)
	s, _ = answer(s, true)
	s, _ = answer(s, true)
	if s.Phase != PhaseComplete {
		t.Fatalf("Phase = %v, want complete", s.Phase)
	}
	return s
}

func TestSubmit_RequestsScorePost(t *testing.T) {
	s := completedSession(t)
	s, cmd := HandleEvent(s, Submit{})
	if s.Phase != PhaseSubmitting {
		t.Errorf("Phase = %v, want submitting", s.Phase)
	}
	if cmd.Effect != EffectSubmitScore {
		t.Errorf("Effect = %v, want EffectSubmitScore", cmd.Effect)
	}

	// A second submit while one is in flight is ignored.
	_, cmd = HandleEvent(s, Submit{})
	if cmd.Effect != EffectNone {
		t.Error("expected duplicate submit to be ignored")
	}
}

func TestSubmit_IgnoredBeforeCompletion(t *testing.T) {
	s := loadedSession(t, 2)
	s, cmd := HandleEvent(s, Submit{})
	if s.Phase != PhasePresenting || cmd.Effect != EffectNone {
		t.Error("expected submit to be ignored while presenting")
	}
}

func TestSubmitFailed_ReturnsToComplete(t *testing.T) {
	s := completedSession(t)
	score := s.Score
	s, _ = HandleEvent(s, Submit{})
	s, cmd := HandleEvent(s, SubmitFailed{Err: errors.New("HTTP 502")})

	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want complete", s.Phase)
	}
	var recErr *RecommendError
	if !errors.As(cmd.Notice, &recErr) {
		t.Errorf("Notice = %v, want *RecommendError", cmd.Notice)
	}
	if s.Score != score {
		t.Errorf("Score = %d, want %d", s.Score, score)
	}

	// Retry is allowed.
	_, cmd = HandleEvent(s, Submit{})
	if cmd.Effect != EffectSubmitScore {
		t.Error("expected retry to submit again")
	}
}

func TestRecommendation_ServiceErrorSurfacedVerbatim(t *testing.T) {
	s := completedSession(t)
	s, _ = HandleEvent(s, Submit{})
	s, cmd := HandleEvent(s, RecommendationReceived{Result: Recommendation{Error: "no data"}})

	if s.Phase == PhaseResults || s.Result != nil {
		t.Fatal("results must not be shown on a service error")
	}
	if UserMessage(cmd.Notice) != "no data" {
		t.Errorf("UserMessage = %q, want %q", UserMessage(cmd.Notice), "no data")
	}
}

func TestRecommendation_ShowsResults(t *testing.T) {
	s := completedSession(t)
	s, _ = HandleEvent(s, Submit{})
	rec := Recommendation{
		Level: "Intermediate",
		Books: []Book{{Title: "X", URL: "u", Price: 10, Pages: 20, Year: 2020}},
	}
	s, cmd := HandleEvent(s, RecommendationReceived{Result: rec})

	if s.Phase != PhaseResults {
		t.Fatalf("Phase = %v, want results", s.Phase)
	}
	if cmd.Render != RenderResults || cmd.Notice != nil {
		t.Errorf("unexpected command %+v", cmd)
	}
	if s.Result == nil || s.Result.Level != "Intermediate" || len(s.Result.Books) != 1 {
		t.Errorf("Result = %+v", s.Result)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseSubmitting.String() != "submitting" {
		t.Errorf("String = %q", PhaseSubmitting.String())
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("String = %q", Phase(99).String())
	}
}
