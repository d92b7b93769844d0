package quiz

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// Start begins a session by requesting the question set.
type Start struct{}

// QuestionsLoaded delivers a successfully fetched question set.
type QuestionsLoaded struct {
	Questions []Question
}

// LoadFailed reports that fetching the question set failed.
type LoadFailed struct {
	Err error
}

// OptionSelected chooses option Index of the current question.
type OptionSelected struct {
	Index int
}

// Advance answers the current question with the selected option.
type Advance struct{}

// Submit posts the final score for recommendations.
type Submit struct{}

// RecommendationReceived delivers a decoded recommendation response.
type RecommendationReceived struct {
	Result Recommendation
}

// SubmitFailed reports a transport or status failure of the score submission.
type SubmitFailed struct {
	Err error
}

func (Start) isEvent()                  {}
func (QuestionsLoaded) isEvent()        {}
func (LoadFailed) isEvent()             {}
func (OptionSelected) isEvent()         {}
func (Advance) isEvent()                {}
func (Submit) isEvent()                 {}
func (RecommendationReceived) isEvent() {}
func (SubmitFailed) isEvent()           {}

// HandleEvent applies ev to s and returns the next session plus the
// command the host must carry out. Events that do not apply to the
// current phase leave the session unchanged and return an empty command.
func HandleEvent(s Session, ev Event) (Session, Command) {
	if s.Phase == PhaseHalted {
		return s, Command{}
	}

	switch ev := ev.(type) {
	case Start:
		if s.Phase != PhaseLoading {
			return s, Command{}
		}
		return s, Command{Render: RenderLoading, Effect: EffectLoadQuestions}

	case QuestionsLoaded:
		if s.Phase != PhaseLoading {
			return s, Command{}
		}
		return present(s, ev.Questions)

	case LoadFailed:
		if s.Phase != PhaseLoading {
			return s, Command{}
		}
		s.Phase = PhaseHalted
		return s, Command{Render: RenderHalted, Notice: &LoadError{Err: ev.Err}}

	case OptionSelected:
		q := s.Current()
		if q == nil || ev.Index < 0 || ev.Index >= len(q.Options) {
			return s, Command{}
		}
		s.Selected = ev.Index
		return s, Command{Render: RenderQuestion}

	case Advance:
		return advance(s)

	case Submit:
		if s.Phase != PhaseComplete {
			return s, Command{}
		}
		s.Phase = PhaseSubmitting
		return s, Command{Render: RenderSubmitting, Effect: EffectSubmitScore}

	case RecommendationReceived:
		if s.Phase != PhaseSubmitting {
			return s, Command{}
		}
		if ev.Result.Error != "" {
			s.Phase = PhaseComplete
			return s, Command{Render: RenderDiagnose, Notice: &ServiceError{Message: ev.Result.Error}}
		}
		result := ev.Result
		s.Result = &result
		s.Phase = PhaseResults
		return s, Command{Render: RenderResults}

	case SubmitFailed:
		if s.Phase != PhaseSubmitting {
			return s, Command{}
		}
		s.Phase = PhaseComplete
		return s, Command{Render: RenderDiagnose, Notice: &RecommendError{Err: ev.Err}}
	}

	return s, Command{}
}

// present installs the question set and shows the first question. An
// empty set is already exhausted.
func present(s Session, questions []Question) (Session, Command) {
	s.Questions = questions
	s.Index = 0
	s.Selected = NoSelection
	if len(questions) == 0 {
		s.Phase = PhaseComplete
		return s, Command{Render: RenderDiagnose}
	}
	s.Phase = PhasePresenting
	return s, Command{Render: RenderQuestion}
}

// advance scores the selected option and moves to the next question or
// to PhaseComplete.
func advance(s Session) (Session, Command) {
	q := s.Current()
	if q == nil {
		return s, Command{}
	}
	if s.Selected == NoSelection {
		return s, Command{Notice: ErrNoSelection}
	}

	correct := q.Options[s.Selected].IsCorrect
	if correct {
		s.Correct++
	}
	s.Score, s.Difficulty = Score(s.Score, s.Difficulty, correct)
	s.Index++
	s.Selected = NoSelection

	if s.Index >= s.Total() {
		s.Phase = PhaseComplete
		return s, Command{Render: RenderDiagnose}
	}
	return s, Command{Render: RenderQuestion}
}
