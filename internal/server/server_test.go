package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bookquiz/internal/catalog"
	"github.com/abhisek/bookquiz/internal/client"
	applog "github.com/abhisek/bookquiz/internal/logging"
	"github.com/abhisek/bookquiz/internal/quiz"
)

type stubRecommender struct {
	rec    quiz.Recommendation
	err    error
	scores []int
}

func (s *stubRecommender) Recommend(_ context.Context, score int) (quiz.Recommendation, error) {
	s.scores = append(s.scores, score)
	return s.rec, s.err
}

const testQuestions = `[{"question": "Q", "options": [{"text": "a", "isCorrect": true}], "difficulty": 1}]`

func newTestServer(t *testing.T, rec Recommender) *Server {
	t.Helper()
	return New(Config{
		Questions:   []byte(testQuestions),
		Recommender: rec,
		Logger:      applog.Discard(),
		Registry:    prometheus.NewRegistry(),
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &stubRecommender{})
	w := do(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestQuestions(t *testing.T) {
	s := newTestServer(t, &stubRecommender{})
	w := do(t, s, http.MethodGet, QuestionsPath, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, testQuestions, w.Body.String())
}

func TestRecommend_OK(t *testing.T) {
	stub := &stubRecommender{rec: quiz.Recommendation{
		Level: "Intermediate",
		Books: []quiz.Book{{Title: "X", URL: "u", Price: 10, Pages: 20, Year: 2020}},
	}}
	s := newTestServer(t, stub)

	w := do(t, s, http.MethodPost, RecommendPath, `{"score": 150}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{150}, stub.scores)

	rec, err := quiz.DecodeRecommendation(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, stub.rec, rec)
}

func TestRecommend_ZeroScoreAccepted(t *testing.T) {
	stub := &stubRecommender{rec: quiz.Recommendation{Level: "Beginner"}}
	s := newTestServer(t, stub)

	w := do(t, s, http.MethodPost, RecommendPath, `{"score": 0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{0}, stub.scores)
}

func TestRecommend_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing score", `{}`, "no score was provided"},
		{"negative score", `{"score": -5}`, "score must not be negative"},
		{"wrong type", `{"score": "ten"}`, "could not read a score from the request"},
		{"not json", `score=10`, "could not read a score from the request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRecommender{}
			s := newTestServer(t, stub)

			w := do(t, s, http.MethodPost, RecommendPath, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, errorOf(t, w))
			assert.Empty(t, stub.scores)
		})
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	s := newTestServer(t, &stubRecommender{err: catalog.ErrEmpty})
	w := do(t, s, http.MethodPost, RecommendPath, `{"score": 10}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, catalog.ErrEmpty.Error(), errorOf(t, w))
}

func TestRecommend_InternalError(t *testing.T) {
	s := newTestServer(t, &stubRecommender{err: errors.New("disk on fire")})
	w := do(t, s, http.MethodPost, RecommendPath, `{"score": 10}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestMetrics(t *testing.T) {
	stub := &stubRecommender{rec: quiz.Recommendation{Level: "Expert"}}
	s := newTestServer(t, stub)
	do(t, s, http.MethodPost, RecommendPath, `{"score": 350}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bookquiz_recommendations_total{level="Expert"} 1`)
	assert.Contains(t, w.Body.String(), `bookquiz_http_request_duration_seconds_count{method="POST",route="/recommend",status="200"} 1`)
}

// The real client against the real server with the embedded-style catalogue.
func TestEndToEnd_ClientAgainstServer(t *testing.T) {
	cat, err := catalog.Open(400)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	require.NoError(t, cat.Insert(context.Background(), []catalog.Book{
		{Title: "Go Basics", Price: 12.5, Pages: 180, Year: 2019, Diff: 20, URL: "https://example.com/a"},
		{Title: "Go Deep", Price: 40, Pages: 420, Year: 2023, Diff: 70, URL: "https://example.com/b"},
	}))

	s := newTestServer(t, cat)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{
		BaseURL:       srv.URL,
		QuestionsPath: QuestionsPath,
		RecommendPath: RecommendPath,
		Logger:        applog.Discard(),
	})
	require.NoError(t, err)

	questions, err := c.FetchQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)

	rec, err := c.Recommend(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, catalog.LevelBeginner, rec.Level)
	require.NotEmpty(t, rec.Books)
	assert.Equal(t, "Go Basics", rec.Books[0].Title)
	assert.Equal(t, "https://example.com/a", rec.Books[0].URL)
}
