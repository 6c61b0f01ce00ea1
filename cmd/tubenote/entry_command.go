package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubenote/internal/artifacts"
	"tubenote/internal/generation"
	"tubenote/internal/services"
)

func newEntryCommand(cctx *commandContext) *cobra.Command {
	var title string
	var entryType string

	cmd := &cobra.Command{
		Use:   "entry <video-id>",
		Short: "Draft entry content from a video's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			kind, err := generation.ParseEntryKind(entryType)
			if err != nil {
				return err
			}
			return cctx.withStore(func(store *artifacts.Store) error {
				ctx := cmd.Context()

				pipeline, err := cctx.newPipeline()
				if err != nil {
					return err
				}
				requestID := uuid.NewString()
				content, err := pipeline.GenerateEntry(services.WithRequestID(ctx, requestID), videoID, kind, title)
				if err != nil {
					return err
				}
				if err := saveResult(ctx, store, cctx, videoID, requestID, generation.Result{
					Task:    generation.TaskEntryDraft,
					Content: content,
				}, kind.String()); err != nil {
					return err
				}

				if cctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"type":    kind.String(),
						"content": content,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title for prompt context")
	cmd.Flags().StringVarP(&entryType, "type", "t", "keypoint", "Entry type: keypoint, quote, or action")
	return cmd
}
