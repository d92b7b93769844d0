package quiz

// Phase represents the current phase of a quiz session.
type Phase int

const (
	PhaseLoading    Phase = iota // Waiting for the question set
	PhasePresenting              // Showing question Index, optionally with a selection
	PhaseComplete                // All questions answered, Diagnose available
	PhaseSubmitting              // Score posted, waiting for recommendations
	PhaseResults                 // Recommendations received and shown
	PhaseHalted                  // Question set failed to load; terminal
)

var phaseNames = [...]string{
	PhaseLoading:    "loading",
	PhasePresenting: "presenting",
	PhaseComplete:   "complete",
	PhaseSubmitting: "submitting",
	PhaseResults:    "results",
	PhaseHalted:     "halted",
}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// NoSelection marks a session with no option chosen for the current question.
const NoSelection = -1

// Session is the in-memory state of one quiz run. It is a plain value:
// transitions take a Session and return the next one.
type Session struct {
	// ID correlates log records of one run. Never sent as state.
	ID string

	Phase Phase

	// Questions is the loaded question set, shared and read-only.
	Questions []Question

	// Index is the current question. It only ever grows by one per answer.
	Index int

	// Score is the cumulative score. Never decreases.
	Score int

	// Difficulty is the running adaptive difficulty, within [MinDifficulty, MaxDifficulty].
	Difficulty int

	// Selected is the chosen option of the current question, or NoSelection.
	Selected int

	// Correct counts correctly answered questions.
	Correct int

	// Result is set once recommendations have been received.
	Result *Recommendation
}

// NewSession returns a session waiting for its question set.
func NewSession(id string) Session {
	return Session{
		ID:         id,
		Phase:      PhaseLoading,
		Difficulty: MinDifficulty,
		Selected:   NoSelection,
	}
}

// Current returns the question being presented, or nil outside PhasePresenting.
func (s Session) Current() *Question {
	if s.Phase != PhasePresenting || s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// CanAdvance reports whether the advance control is enabled.
func (s Session) CanAdvance() bool {
	return s.Phase == PhasePresenting && s.Selected != NoSelection
}

// Total returns the number of questions that end the quiz.
func (s Session) Total() int {
	return len(s.Questions)
}

// Render names the view the host should draw after a transition.
type Render int

const (
	RenderNone       Render = iota // Nothing changed
	RenderLoading                  // Waiting for questions
	RenderQuestion                 // Question Index with its options
	RenderDiagnose                 // Quiz done, primary control is Diagnose
	RenderSubmitting               // Waiting for recommendations
	RenderResults                  // Level label and book list
	RenderHalted                   // Load failed; nothing more to show
)

// Effect names a side effect the host must perform after a transition.
type Effect int

const (
	EffectNone          Effect = iota
	EffectLoadQuestions        // Fetch the question set, then dispatch QuestionsLoaded or LoadFailed
	EffectSubmitScore          // Post Session.Score, then dispatch RecommendationReceived or SubmitFailed
)

// Command is the output of a transition besides the next session.
type Command struct {
	Render Render

	// Notice is non-nil when the learner must be told something before
	// continuing. See UserMessage.
	Notice error

	Effect Effect
}
