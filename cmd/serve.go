package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/bookquiz/internal/assets"
	"github.com/abhisek/bookquiz/internal/catalog"
	"github.com/abhisek/bookquiz/internal/config"
	"github.com/abhisek/bookquiz/internal/logging"
	"github.com/abhisek/bookquiz/internal/quiz"
	"github.com/abhisek/bookquiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the companion quiz and recommendation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd,
			flagOverride{flag: "addr", key: "serve.addr"},
			flagOverride{flag: "questions", key: "serve.questions_file"},
			flagOverride{flag: "books", key: "serve.books_file"},
			flagOverride{flag: "max-score", key: "serve.max_score"},
		)
		if err != nil {
			return err
		}
		logger := logging.NewTerminal(cfg.Log.Level, cmd.ErrOrStderr())

		raw, questions, err := loadQuestionBank(cfg.Serve)
		if err != nil {
			return err
		}
		cfg.Serve.MaxScore = maxScoreFor(cfg.Serve.MaxScore, questions)

		cat, err := openCatalog(cmd.Context(), cfg.Serve, logger)
		if err != nil {
			return err
		}
		defer cat.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Config{
			Addr:        cfg.Serve.Addr,
			Questions:   raw,
			Recommender: cat,
			Logger:      logger,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (host:port)")
	serveCmd.Flags().String("questions", "", "Question bank JSON file (default: built-in sample)")
	serveCmd.Flags().String("books", "", "Book catalogue CSV file (default: built-in sample)")
	serveCmd.Flags().Int("max-score", 0, "Highest possible quiz score (default: derived from the question bank)")
}

// loadQuestionBank reads the configured question bank, or the built-in
// sample, and checks it before serving.
func loadQuestionBank(cfg config.ServeConfig) ([]byte, []quiz.Question, error) {
	raw := assets.Questions
	if cfg.QuestionsFile != "" {
		data, err := os.ReadFile(cfg.QuestionsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read question bank: %w", err)
		}
		raw = data
	}
	questions, err := quiz.DecodeQuestions(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("question bank: %w", err)
	}
	return raw, questions, nil
}

// maxScoreFor returns the configured max score, or the highest score the
// served bank allows when none is configured. An empty bank still scales
// against one question so the catalogue can open.
func maxScoreFor(configured int, questions []quiz.Question) int {
	if configured > 0 {
		return configured
	}
	return quiz.MaxScore(max(len(questions), 1))
}

func openCatalog(ctx context.Context, cfg config.ServeConfig, logger *slog.Logger) (*catalog.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := catalog.Open(cfg.MaxScore)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}

	source := "built-in sample"
	var n int
	if cfg.BooksFile != "" {
		source = cfg.BooksFile
		n, err = cat.LoadFile(ctx, cfg.BooksFile)
	} else {
		n, err = cat.Load(ctx, bytes.NewReader(assets.Books))
	}
	if err != nil {
		cat.Close()
		return nil, fmt.Errorf("load catalogue from %s: %w", source, err)
	}

	logger.Info("catalogue loaded",
		slog.String("source", source),
		slog.Int("books", n),
		slog.Int("max_score", cfg.MaxScore),
	)
	return cat, nil
}
