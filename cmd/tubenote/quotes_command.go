package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubenote/internal/artifacts"
	"tubenote/internal/generation"
	"tubenote/internal/services"
)

func newQuotesCommand(cctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "quotes <video-id>",
		Short: "Suggest quotable statements from a video's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			return cctx.withStore(func(store *artifacts.Store) error {
				ctx := cmd.Context()

				pipeline, err := cctx.newPipeline()
				if err != nil {
					return err
				}
				requestID := uuid.NewString()
				quotes, err := pipeline.SuggestQuotes(services.WithRequestID(ctx, requestID), videoID, title)
				if err != nil {
					return err
				}
				if err := saveResult(ctx, store, cctx, videoID, requestID, generation.Result{
					Task:   generation.TaskQuoteSuggestion,
					Quotes: quotes,
				}, ""); err != nil {
					return err
				}

				if cctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"quotes": quotes})
				}
				out := cmd.OutOrStdout()
				for _, quote := range quotes {
					fmt.Fprintf(out, "%q\n", quote)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title for prompt context")
	return cmd
}
