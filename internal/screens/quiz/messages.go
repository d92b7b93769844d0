package quiz

import (
	qz "github.com/abhisek/bookquiz/internal/quiz"
)

// questionsLoadedMsg carries the outcome of fetching the question set.
type questionsLoadedMsg struct {
	Questions []qz.Question
	Err       error
}

// recommendationMsg carries the outcome of posting the score.
type recommendationMsg struct {
	Result qz.Recommendation
	Err    error
}
