package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubenote/internal/artifacts"
	"tubenote/internal/generation"
	"tubenote/internal/services"
)

func newQuizCommand(cctx *commandContext) *cobra.Command {
	var title string
	var force bool

	cmd := &cobra.Command{
		Use:   "quiz <video-id>",
		Short: "Generate a five-question quiz from a video's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			return cctx.withStore(func(store *artifacts.Store) error {
				ctx := cmd.Context()

				if !force {
					stored, err := store.Find(ctx, videoID, generation.TaskQuiz.String(), "")
					if err != nil {
						return err
					}
					if stored != nil {
						quiz, err := artifacts.DecodeQuiz(stored)
						if err != nil {
							return err
						}
						return printQuiz(cmd, cctx, quiz, true)
					}
				}

				pipeline, err := cctx.newPipeline()
				if err != nil {
					return err
				}
				requestID := uuid.NewString()
				quiz, err := pipeline.GenerateQuiz(services.WithRequestID(ctx, requestID), videoID, title)
				if err != nil {
					return err
				}
				if err := saveResult(ctx, store, cctx, videoID, requestID, generation.Result{
					Task: generation.TaskQuiz,
					Quiz: quiz,
				}, ""); err != nil {
					return err
				}
				return printQuiz(cmd, cctx, quiz, false)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title for prompt context")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even if a quiz is already stored")
	return cmd
}

func printQuiz(cmd *cobra.Command, cctx *commandContext, quiz *generation.QuizDraft, reused bool) error {
	if cctx.jsonOutput() {
		return writeJSON(cmd, quizView(quiz, reused))
	}
	out := cmd.OutOrStdout()
	if reused {
		fmt.Fprintln(out, "Using stored quiz (pass --force to regenerate)")
	}
	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, q.Question)
		rows := make([][]string, 0, len(q.Options))
		for j, option := range q.Options {
			marker := ""
			if j+1 == q.CorrectOption {
				marker = "*"
			}
			rows = append(rows, []string{strconv.Itoa(j + 1), option, marker})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Option", "Correct"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
	}
	return nil
}

type quizQuestionView struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

type quizViewPayload struct {
	Reused    bool               `json:"reused"`
	Questions []quizQuestionView `json:"questions"`
}

func quizView(quiz *generation.QuizDraft, reused bool) quizViewPayload {
	view := quizViewPayload{Reused: reused, Questions: make([]quizQuestionView, 0, len(quiz.Questions))}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, quizQuestionView{
			Question:      q.Question,
			Options:       q.Options[:],
			CorrectOption: q.CorrectOption,
		})
	}
	return view
}

// saveResult persists a validated result, keyed so a rerun replaces it.
func saveResult(ctx context.Context, store *artifacts.Store, cctx *commandContext, videoID, requestID string, result generation.Result, subtype string) error {
	payload, err := artifacts.EncodePayload(result)
	if err != nil {
		return err
	}
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	_, err = store.Save(ctx, &artifacts.Artifact{
		VideoID:   videoID,
		Task:      result.Task.String(),
		Subtype:   subtype,
		Payload:   payload,
		RequestID: requestID,
		Model:     cfg.Gemini.Model,
	})
	return err
}
