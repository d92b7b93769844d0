package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/bookquiz/internal/quiz"
)

// HeaderRequestID carries a per-request ID for server-side log correlation.
const HeaderRequestID = "X-Request-ID"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// Config configures a Client.
type Config struct {
	BaseURL       string
	QuestionsPath string
	RecommendPath string
	Timeout       time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client

	// Logger receives one debug record per request. Nil uses slog.Default().
	Logger *slog.Logger
}

// Client talks to the question source and the recommendation service.
// Every call is a single attempt; there are no retries.
type Client struct {
	http          *http.Client
	baseURL       string
	questionsPath string
	recommendPath string
	logger        *slog.Logger
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:          httpClient,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		questionsPath: cfg.QuestionsPath,
		recommendPath: cfg.RecommendPath,
		logger:        logger.With(slog.String("component", "client")),
	}, nil
}

// FetchQuestions retrieves and decodes the question set.
func (c *Client) FetchQuestions(ctx context.Context) ([]quiz.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.questionsPath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	questions, err := quiz.DecodeQuestions(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("questions loaded", slog.Int("count", len(questions)))
	return questions, nil
}

// Recommend posts the score and returns the decoded response. A response
// whose error field is populated is returned without error; the caller
// decides how to surface it.
func (c *Client) Recommend(ctx context.Context, score int) (quiz.Recommendation, error) {
	payload, err := json.Marshal(quiz.ScoreRequest{Score: score})
	if err != nil {
		return quiz.Recommendation{}, fmt.Errorf("encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.recommendPath, bytes.NewReader(payload))
	if err != nil {
		return quiz.Recommendation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return quiz.Recommendation{}, err
	}
	return quiz.DecodeRecommendation(body)
}

// do executes req once and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())

	logger := c.logger.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("request_id", req.Header.Get(HeaderRequestID)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("request failed", slog.Duration("duration", time.Since(start)), slog.Any("error", err))
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	logger = logger.With(
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode/100 != 2 {
		logger.Error("unexpected status")
		return nil, &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Code:   resp.StatusCode,
			Status: resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error("read body failed", slog.Any("error", err))
		return nil, fmt.Errorf("read response body: %w", err)
	}
	logger.Debug("request completed", slog.Int("bytes", len(body)))
	return body, nil
}
