package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/bookquiz/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Work with question bank files",
}

var questionsCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a question bank and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read question bank: %w", err)
		}
		questions, err := quiz.DecodeQuestions(raw)
		if err != nil {
			return err
		}
		return printQuestionSummary(cmd.OutOrStdout(), questions)
	},
}

func init() {
	questionsCmd.AddCommand(questionsCheckCmd)
}

// printQuestionSummary writes counts per difficulty and lists questions
// that cannot be answered correctly. Such questions make the check fail.
func printQuestionSummary(w io.Writer, questions []quiz.Question) error {
	fmt.Fprintf(w, "Questions: %d\n", len(questions))
	fmt.Fprintf(w, "Max score: %d\n", quiz.MaxScore(len(questions)))

	byDifficulty := make(map[int]int)
	var unanswerable []int
	for i, q := range questions {
		byDifficulty[q.Difficulty]++
		if q.CorrectIndex() < 0 {
			unanswerable = append(unanswerable, i)
		}
	}

	levels := make([]int, 0, len(byDifficulty))
	for d := range byDifficulty {
		levels = append(levels, d)
	}
	slices.Sort(levels)

	fmt.Fprintln(w, "By difficulty:")
	for _, d := range levels {
		fmt.Fprintf(w, "  %d: %d\n", d, byDifficulty[d])
	}

	if len(unanswerable) == 0 {
		return nil
	}
	fmt.Fprintln(w, "No correct option:")
	for _, i := range unanswerable {
		fmt.Fprintf(w, "  #%d %s\n", i+1, questions[i].Text)
	}
	return fmt.Errorf("%d question(s) have no correct option", len(unanswerable))
}
