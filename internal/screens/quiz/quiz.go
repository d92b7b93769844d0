package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/bookquiz/internal/quiz"
	"github.com/abhisek/bookquiz/internal/router"
	"github.com/abhisek/bookquiz/internal/screen"
	"github.com/abhisek/bookquiz/internal/screens/results"
	"github.com/abhisek/bookquiz/internal/ui/components"
	"github.com/abhisek/bookquiz/internal/ui/layout"
	"github.com/abhisek/bookquiz/internal/ui/theme"
)

// Service fetches questions and recommendations.
type Service interface {
	FetchQuestions(ctx context.Context) ([]qz.Question, error)
	Recommend(ctx context.Context, score int) (qz.Recommendation, error)
}

// QuizScreen drives one quiz session. All state changes go through
// qz.HandleEvent; the screen only turns keys into events and carries out
// the returned commands.
type QuizScreen struct {
	svc     Service
	logger  *slog.Logger
	session qz.Session

	options    components.OptionList
	optionsFor int // question index the option list was built for

	spinner spinner.Model
	notice  error
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.StatusProvider  = (*QuizScreen)(nil)
)

// New creates a QuizScreen for a fresh session.
func New(svc Service, sessionID string, logger *slog.Logger) *QuizScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizScreen{
		svc:        svc,
		logger:     logger.With(slog.String("session_id", sessionID)),
		session:    qz.NewSession(sessionID),
		optionsFor: -1,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Cursor),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	_, cmd := s.dispatch(qz.Start{})
	return cmd
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Session returns the current session value.
func (s *QuizScreen) Session() qz.Session {
	return s.session
}

// Notice returns the open notice, or nil.
func (s *QuizScreen) Notice() error {
	return s.notice
}

func (s *QuizScreen) Status() *layout.Status {
	return &layout.Status{
		Score:    s.session.Score,
		Answered: s.session.Index,
		Total:    s.session.Total(),
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.notice != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Dismiss"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	switch s.session.Phase {
	case qz.PhasePresenting:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case qz.PhaseComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Diagnose"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		if msg.Err != nil {
			s.logger.Error("question load failed", slog.Any("error", msg.Err))
			return s.dispatch(qz.LoadFailed{Err: msg.Err})
		}
		return s.dispatch(qz.QuestionsLoaded{Questions: msg.Questions})

	case recommendationMsg:
		if msg.Err != nil {
			s.logger.Error("recommendation failed", slog.Any("error", msg.Err))
			return s.dispatch(qz.SubmitFailed{Err: msg.Err})
		}
		return s.dispatch(qz.RecommendationReceived{Result: msg.Result})

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// An open notice blocks everything until dismissed.
	if s.notice != nil {
		if key == "enter" || key == "esc" {
			s.notice = nil
		}
		return s, nil
	}

	switch s.session.Phase {
	case qz.PhasePresenting:
		if key == "enter" {
			return s.dispatch(qz.Advance{})
		}
		s.options, _ = s.options.Update(msg)
		if s.options.Picked >= 0 {
			return s.dispatch(qz.OptionSelected{Index: s.options.Picked})
		}
		return s, nil

	case qz.PhaseComplete:
		if key == "enter" {
			return s.dispatch(qz.Submit{})
		}
	}
	return s, nil
}

// dispatch feeds ev to the state machine and carries out its command.
func (s *QuizScreen) dispatch(ev qz.Event) (screen.Screen, tea.Cmd) {
	prev := s.session
	next, cmd := qz.HandleEvent(prev, ev)
	s.session = next

	if next.Phase != prev.Phase || next.Index != prev.Index {
		s.logger.Debug("quiz transition",
			slog.String("event", fmt.Sprintf("%T", ev)),
			slog.String("from", prev.Phase.String()),
			slog.String("to", next.Phase.String()),
			slog.Int("index", next.Index),
			slog.Int("score", next.Score),
			slog.Int("difficulty", next.Difficulty),
		)
	}

	if cmd.Notice != nil {
		s.notice = cmd.Notice
		s.logger.Warn("notice shown",
			slog.String("phase", next.Phase.String()),
			slog.Any("error", cmd.Notice),
		)
	}

	s.syncOptions()

	var cmds []tea.Cmd
	switch cmd.Effect {
	case qz.EffectLoadQuestions:
		cmds = append(cmds, s.fetchQuestions(), s.spinner.Tick)
	case qz.EffectSubmitScore:
		cmds = append(cmds, s.submitScore(next.Score), s.spinner.Tick)
	}

	if cmd.Render == qz.RenderResults && next.Result != nil {
		s.logger.Info("quiz finished",
			slog.Int("score", next.Score),
			slog.Int("correct", next.Correct),
			slog.Int("total", next.Total()),
			slog.String("level", next.Result.Level),
			slog.Int("books", len(next.Result.Books)),
		)
		res := results.New(*next.Result, next.Score)
		cmds = append(cmds, func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} })
	}

	return s, tea.Batch(cmds...)
}

// syncOptions rebuilds the option list when a new question is shown and
// mirrors the session's selection into it.
func (s *QuizScreen) syncOptions() {
	q := s.session.Current()
	if q == nil {
		return
	}
	if s.optionsFor != s.session.Index {
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Text
		}
		s.options = components.NewOptionList(labels)
		s.optionsFor = s.session.Index
	}
	s.options = s.options.SetChosen(s.session.Selected)
}

func (s *QuizScreen) busy() bool {
	return s.session.Phase == qz.PhaseLoading || s.session.Phase == qz.PhaseSubmitting
}

func (s *QuizScreen) fetchQuestions() tea.Cmd {
	return func() tea.Msg {
		questions, err := s.svc.FetchQuestions(context.Background())
		return questionsLoadedMsg{Questions: questions, Err: err}
	}
}

func (s *QuizScreen) submitScore(score int) tea.Cmd {
	return func() tea.Msg {
		result, err := s.svc.Recommend(context.Background(), score)
		return recommendationMsg{Result: result, Err: err}
	}
}
