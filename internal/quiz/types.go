package quiz

import "encoding/json"

// Option is one answer choice of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single item of the question bank. Questions are never
// modified after loading.
type Question struct {
	Text       string   `json:"text"`
	Options    []Option `json:"options"`
	Difficulty int      `json:"difficulty"`
}

// UnmarshalJSON accepts the prompt under either "text" or "question".
// Older question banks only carry "question".
func (q *Question) UnmarshalJSON(b []byte) error {
	var raw struct {
		Text       string   `json:"text"`
		Question   string   `json:"question"`
		Options    []Option `json:"options"`
		Difficulty int      `json:"difficulty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	q.Text = raw.Text
	if q.Text == "" {
		q.Text = raw.Question
	}
	q.Options = raw.Options
	q.Difficulty = raw.Difficulty
	return nil
}

// CorrectIndex returns the index of the first correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// Book is a single recommended book.
type Book struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Image string  `json:"image,omitempty"`
	Price float64 `json:"price"`
	Pages int     `json:"pages"`
	Year  int     `json:"year"`
}

// Recommendation is the payload returned by the recommendation service.
// Error is set when the service reports an application-level failure.
type Recommendation struct {
	Level string `json:"level"`
	Books []Book `json:"recommended_books"`
	Error string `json:"error,omitempty"`
}

// ScoreRequest is the body posted to the recommendation service.
type ScoreRequest struct {
	Score int `json:"score"`
}
