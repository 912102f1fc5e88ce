package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

func newQuizCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Run an interactive multiple choice quiz",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				return runQuiz(ctx, e.session, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

// runQuiz drives the session's quiz from line-based input until the quiz
// ends or the input is exhausted. "q" quits.
func runQuiz(ctx context.Context, s *service.Session, in io.Reader, out io.Writer) error {
	step, err := s.StartQuiz(ctx)
	if err != nil {
		return err
	}

	lang := s.Language()
	scanner := bufio.NewScanner(in)

	for step.State == entities.QuizAwaitingAnswer {
		q := step.Question
		fmt.Fprintf(out, "\nWhat does %q mean?\n", q.Target.Word)
		for i, o := range q.Options {
			marker := " "
			if q.Disabled[o.ID] {
				marker = "x"
			}
			fmt.Fprintf(out, "  %s %d) %s\n", marker, i+1, o.TranslationFor(lang))
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "q" {
			break
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintf(out, "Enter a number from 1 to %d, or q to quit.\n", len(q.Options))
			continue
		}

		outcome, err := s.AnswerQuiz(ctx, q.Options[n-1].ID)
		if errors.Is(err, service.ErrOptionAlreadyTried) {
			fmt.Fprintln(out, "You already tried that one.")
			continue
		}
		if err != nil {
			return err
		}

		if !outcome.Correct {
			fmt.Fprintln(out, "Wrong, try again.")
			continue
		}

		fmt.Fprintf(out, "Correct: %s = %s\n", q.Target.Word, q.Target.TranslationFor(lang))
		if outcome.Terminal {
			step = s.QuizStep()
			break
		}

		step, err = s.NextQuestion(ctx)
		if err != nil {
			return err
		}
	}

	switch step.State {
	case entities.QuizComplete:
		fmt.Fprintln(out, "\nYou know every card in this selection.")
	case entities.QuizLastCard:
		c := step.LastCard
		fmt.Fprintf(out, "\nOne card left, review it as a flashcard: %s = %s\n", c.Word, c.TranslationFor(lang))
	}

	score := s.QuizScore()
	fmt.Fprintf(out, "Score: %d/%d (%d attempts)\n", score.Score, score.Total, score.Attempts)
	return scanner.Err()
}
