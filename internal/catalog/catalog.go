package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhisek/bookquiz/internal/quiz"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ScaledMax is the top of the catalogue's difficulty range. Scores are
// scaled onto [0, ScaledMax] before matching against Diff.
const ScaledMax = 85

// Candidates is how many nearest-difficulty books are considered.
const Candidates = 10

// ErrEmpty is returned when no book can be recommended.
var ErrEmpty = errors.New("no suitable books were found")

// Book is one catalogue row.
type Book struct {
	Title string
	Price float64
	Pages int
	Year  int
	Diff  float64
	Pass  string // cover image path
	URL   string
}

// Catalog holds the book catalogue in an in-memory SQLite database.
type Catalog struct {
	db       *sql.DB
	maxScore int
}

// Open creates an empty catalogue. maxScore is the highest quiz score and
// maps to ScaledMax.
func Open(maxScore int) (*Catalog, error) {
	if maxScore <= 0 {
		return nil, fmt.Errorf("max score must be positive, got %d", maxScore)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Catalog{db: db, maxScore: maxScore}, nil
}

const schema = `CREATE TABLE books (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	price REAL NOT NULL,
	pages INTEGER NOT NULL,
	year  INTEGER NOT NULL,
	diff  REAL NOT NULL,
	pass  TEXT NOT NULL DEFAULT '',
	url   TEXT NOT NULL DEFAULT ''
)`

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Insert adds books in a single transaction.
func (c *Catalog) Insert(ctx context.Context, books []Book) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO books (title, price, pages, year, diff, pass, url) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range books {
		if _, err := stmt.ExecContext(ctx, b.Title, b.Price, b.Pages, b.Year, b.Diff, b.Pass, b.URL); err != nil {
			return fmt.Errorf("insert %q: %w", b.Title, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of books.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// Nearest returns up to limit books whose Diff is closest to diff, nearest
// first. Ties keep catalogue order.
func (c *Catalog) Nearest(ctx context.Context, diff float64, limit int) ([]Book, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT title, price, pages, year, diff, pass, url FROM books
		 ORDER BY ABS(diff - ?), id LIMIT ?`, diff, limit)
	if err != nil {
		return nil, fmt.Errorf("query nearest: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.Title, &b.Price, &b.Pages, &b.Year, &b.Diff, &b.Pass, &b.URL); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Scale maps a quiz score onto the catalogue difficulty range.
func (c *Catalog) Scale(score int) float64 {
	return float64(score) * ScaledMax / float64(c.maxScore)
}

// Recommend picks books for score: among the Candidates nearest in
// difficulty, the cheapest, the shortest and the newest. A book that wins
// more than one category is listed once.
func (c *Catalog) Recommend(ctx context.Context, score int) (quiz.Recommendation, error) {
	candidates, err := c.Nearest(ctx, c.Scale(score), Candidates)
	if err != nil {
		return quiz.Recommendation{}, err
	}
	if len(candidates) == 0 {
		return quiz.Recommendation{}, ErrEmpty
	}

	cheapest, shortest, newest := 0, 0, 0
	for i, b := range candidates {
		if b.Price < candidates[cheapest].Price {
			cheapest = i
		}
		if b.Pages < candidates[shortest].Pages {
			shortest = i
		}
		if b.Year > candidates[newest].Year {
			newest = i
		}
	}

	rec := quiz.Recommendation{Level: Level(score)}
	seen := make(map[int]bool, 3)
	for _, i := range []int{cheapest, shortest, newest} {
		if seen[i] {
			continue
		}
		seen[i] = true
		rec.Books = append(rec.Books, candidates[i].toQuiz())
	}
	return rec, nil
}

func (b Book) toQuiz() quiz.Book {
	return quiz.Book{
		Title: b.Title,
		URL:   b.URL,
		Image: b.Pass,
		Price: b.Price,
		Pages: b.Pages,
		Year:  b.Year,
	}
}
