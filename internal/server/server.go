// Package server implements the companion HTTP server: it serves the
// question bank and ranks books for a submitted score.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/bookquiz/internal/catalog"
	"github.com/abhisek/bookquiz/internal/quiz"
)

const (
	QuestionsPath = "/static/json/questions.json"
	RecommendPath = "/recommend"

	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// Recommender ranks books for a score.
type Recommender interface {
	Recommend(ctx context.Context, score int) (quiz.Recommendation, error)
}

// Config configures a Server.
type Config struct {
	Addr string

	// Questions is the raw question bank served as-is.
	Questions []byte

	Recommender Recommender
	Logger      *slog.Logger

	// Registry collects metrics. Nil creates a private registry.
	Registry *prometheus.Registry
}

// Server is the companion HTTP server.
type Server struct {
	engine    *gin.Engine
	http      *http.Server
	logger    *slog.Logger
	questions []byte
	rec       Recommender
	metrics   *metrics
	validate  *validator.Validate
}

// recommendRequest is the body of POST /recommend. Score is a pointer so
// a missing field is told apart from zero.
type recommendRequest struct {
	Score *int `json:"score" validate:"required,min=0"`
}

// New builds a Server and registers its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		engine:    engine,
		logger:    logger,
		questions: cfg.Questions,
		rec:       cfg.Recommender,
		metrics:   newMetrics(reg),
		validate:  validator.New(),
	}

	engine.Use(
		recovery(logger),
		requestID(),
		s.metrics.observe(),
		logging(logger),
	)

	engine.GET("/healthz", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	engine.GET(QuestionsPath, s.getQuestions)
	engine.POST(RecommendPath, s.recommend)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler (tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("companion server listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down companion server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getQuestions(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", s.questions)
}

func (s *Server) recommend(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("could not read a score from the request"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(scoreMessage(err)))
		return
	}

	rec, err := s.rec.Recommend(c.Request.Context(), *req.Score)
	if errors.Is(err, catalog.ErrEmpty) {
		c.JSON(http.StatusNotFound, errorBody(err.Error()))
		return
	}
	if err != nil {
		s.logger.Error("recommend failed", slog.Int("score", *req.Score), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, errorBody("the recommendation could not be computed"))
		return
	}

	s.metrics.recommendations.WithLabelValues(rec.Level).Inc()
	s.logger.Debug("recommendation served",
		slog.Int("score", *req.Score),
		slog.String("level", rec.Level),
		slog.Int("books", len(rec.Books)),
	)
	c.JSON(http.StatusOK, rec)
}

// scoreMessage turns a validation failure into a client-facing message.
func scoreMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return "no score was provided"
		case "min":
			return "score must not be negative"
		}
	}
	return "invalid score"
}
