package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema for a wire payload. It is compiled on
// first use.
type Schema struct {
	Name       string
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// QuestionBankSchema describes the question set served at the questions path.
var QuestionBankSchema = &Schema{
	Name: "question-bank",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":     map[string]any{"type": "string"},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text":      map[string]any{"type": "string"},
							"isCorrect": map[string]any{"type": "boolean"},
						},
						"required": []any{"text", "isCorrect"},
					},
				},
				"difficulty": map[string]any{"type": "integer"},
			},
			"required": []any{"options"},
			"anyOf": []any{
				map[string]any{"required": []any{"text"}},
				map[string]any{"required": []any{"question"}},
			},
		},
	},
}

// RecommendationSchema describes a successful recommendation response.
var RecommendationSchema = &Schema{
	Name: "recommendation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{"type": "string"},
			"recommended_books": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"price": map[string]any{"type": "number"},
						"pages": map[string]any{"type": "number"},
						"year":  map[string]any{"type": "number"},
					},
					"required": []any{"title"},
				},
			},
		},
		"required": []any{"level", "recommended_books"},
	},
}

// InvalidPayloadError indicates a payload does not conform to its schema.
type InvalidPayloadError struct {
	Schema string
	Err    error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Schema, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }

// Validate checks raw JSON against schema. Returns *InvalidPayloadError on failure.
func Validate(schema *Schema, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidPayloadError{Schema: schema.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := schema.compile()
	if err != nil {
		return &InvalidPayloadError{Schema: schema.Name, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &InvalidPayloadError{Schema: schema.Name, Err: err}
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		def, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("encode %s schema: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
		if err != nil {
			s.err = fmt.Errorf("read %s schema: %w", s.Name, err)
			return
		}

		loc := "https://bookquiz.local/schemas/" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(loc, doc); err != nil {
			s.err = fmt.Errorf("load %s schema: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(loc)
	})
	return s.compiled, s.err
}

// DecodeQuestions validates and decodes a question-bank payload.
func DecodeQuestions(raw []byte) ([]Question, error) {
	if err := Validate(QuestionBankSchema, raw); err != nil {
		return nil, err
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

// DecodeRecommendation decodes a recommendation payload. A payload carrying
// an error field is returned as-is; otherwise it must match RecommendationSchema.
func DecodeRecommendation(raw []byte) (Recommendation, error) {
	var rec Recommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Recommendation{}, fmt.Errorf("decode recommendation: %w", err)
	}
	if rec.Error != "" {
		return rec, nil
	}
	if err := Validate(RecommendationSchema, raw); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}
