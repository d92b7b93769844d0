package quiz

import (
	"errors"
	"testing"
)

func TestDecodeQuestions_AcceptsTextAndQuestionKeys(t *testing.T) {
	raw := []byte(`[
		{"text": "First?", "options": [{"text": "a", "isCorrect": true}], "difficulty": 1},
		{"question": "Second?", "options": [{"text": "b", "isCorrect": false}, {"text": "c", "isCorrect": true}], "difficulty": 3}
	]`)

	qs, err := DecodeQuestions(raw)
	if err != nil {
		t.Fatalf("DecodeQuestions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	if qs[0].Text != "First?" || qs[1].Text != "Second?" {
		t.Errorf("texts = %q, %q", qs[0].Text, qs[1].Text)
	}
	if qs[1].Difficulty != 3 {
		t.Errorf("Difficulty = %d, want 3", qs[1].Difficulty)
	}
	if qs[1].CorrectIndex() != 1 {
		t.Errorf("CorrectIndex = %d, want 1", qs[1].CorrectIndex())
	}
}

func TestDecodeQuestions_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"object instead of array", `{"text": "x"}`},
		{"missing options", `[{"text": "x"}]`},
		{"missing prompt", `[{"options": [{"text": "a", "isCorrect": true}]}]`},
		{"option flag not boolean", `[{"text": "x", "options": [{"text": "a", "isCorrect": "true"}]}]`},
	}

	for _, tt := range tests {
		_, err := DecodeQuestions([]byte(tt.raw))
		var invalid *InvalidPayloadError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: err = %v, want *InvalidPayloadError", tt.name, err)
		}
	}
}

func TestDecodeRecommendation(t *testing.T) {
	raw := []byte(`{"level": "Intermediate", "recommended_books": [
		{"title": "X", "URL": "u", "price": 10, "pages": 20, "year": 2020, "image": "img.png"}
	]}`)

	rec, err := DecodeRecommendation(raw)
	if err != nil {
		t.Fatalf("DecodeRecommendation: %v", err)
	}
	if rec.Level != "Intermediate" || len(rec.Books) != 1 {
		t.Fatalf("rec = %+v", rec)
	}
	b := rec.Books[0]
	if b.Title != "X" || b.URL != "u" || b.Price != 10 || b.Pages != 20 || b.Year != 2020 || b.Image != "img.png" {
		t.Errorf("book = %+v", b)
	}
}

func TestDecodeRecommendation_ErrorField(t *testing.T) {
	rec, err := DecodeRecommendation([]byte(`{"error": "no data"}`))
	if err != nil {
		t.Fatalf("DecodeRecommendation: %v", err)
	}
	if rec.Error != "no data" {
		t.Errorf("Error = %q, want %q", rec.Error, "no data")
	}
}

func TestDecodeRecommendation_MissingLevel(t *testing.T) {
	_, err := DecodeRecommendation([]byte(`{"recommended_books": []}`))
	var invalid *InvalidPayloadError
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want *InvalidPayloadError", err)
	}
}

func TestSchema_CompiledOnce(t *testing.T) {
	s := &Schema{
		Name:       "score",
		Definition: map[string]any{"type": "object", "required": []any{"score"}},
	}

	if err := Validate(s, []byte(`{"score": 3}`)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	first := s.compiled
	if first == nil {
		t.Fatal("expected schema compiled on first use")
	}

	err := Validate(s, []byte(`{}`))
	var invalid *InvalidPayloadError
	if !errors.As(err, &invalid) || invalid.Schema != "score" {
		t.Fatalf("expected InvalidPayloadError for score, got %v", err)
	}
	if s.compiled != first {
		t.Error("expected compiled schema reused")
	}
}

func TestSchema_BadDefinition(t *testing.T) {
	s := &Schema{Name: "broken", Definition: map[string]any{"type": 42}}

	err := Validate(s, []byte(`{}`))
	var invalid *InvalidPayloadError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidPayloadError, got %v", err)
	}
}
