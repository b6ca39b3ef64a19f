package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aqua777/ragspace/schema"
)

var askShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask [space-id] [prompt...]",
	Short: "Ask a question grounded in a space's documents",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		resp, err := sys.Answer(cmd.Context(), schema.AnswerRequest{
			SpaceID: args[0],
			Prompt:  strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Println(resp.Response)
		if askShowContext && resp.ContextSummary != "" {
			fmt.Println("\n--- context ---")
			fmt.Println(resp.ContextSummary)
		}
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions [space-id]",
	Short: "Suggest questions the space's documents can answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		resp, err := sys.Answer(cmd.Context(), schema.AnswerRequest{SpaceID: args[0]})
		if err != nil {
			return err
		}
		for _, q := range resp.SampleQuestions {
			fmt.Println(q)
		}
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [space-id]",
	Short: "Summarize all documents in a space",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		summary, err := sys.Summarize(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

var quizCount int

var quizCmd = &cobra.Command{
	Use:   "quiz [space-id]",
	Short: "Generate a quiz from a space's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		quiz, err := sys.GenerateQuiz(cmd.Context(), args[0], quizCount)
		if err != nil {
			return err
		}
		fmt.Println(quiz)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context below the answer")
	quizCmd.Flags().IntVarP(&quizCount, "count", "n", 5, "number of quiz questions")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(quizCmd)
}
