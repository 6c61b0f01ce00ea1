package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubenote/internal/artifacts"
	"tubenote/internal/generation"
	"tubenote/internal/services"
)

func newSummaryCommand(cctx *commandContext) *cobra.Command {
	var title string
	var channel string
	var force bool

	cmd := &cobra.Command{
		Use:   "summary <video-id>",
		Short: "Generate a study guide for a video",
		Long: `Generate a study guide from a video's transcript. When the transcript
cannot be retrieved, a lower-confidence guide is generated from the video
title alone and carries a disclaimer saying so.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			return cctx.withStore(func(store *artifacts.Store) error {
				ctx := cmd.Context()

				if !force {
					stored, err := store.Find(ctx, videoID, generation.TaskSummary.String(), "")
					if err != nil {
						return err
					}
					if stored != nil {
						summary, err := artifacts.DecodeSummary(stored)
						if err != nil {
							return err
						}
						return printSummary(cmd, cctx, summary, true)
					}
				}

				pipeline, err := cctx.newPipeline()
				if err != nil {
					return err
				}
				requestID := uuid.NewString()
				summary, err := pipeline.SummarizeVideo(services.WithRequestID(ctx, requestID), videoID, title, channel)
				if err != nil {
					return err
				}
				if err := saveResult(ctx, store, cctx, videoID, requestID, generation.Result{
					Task:    generation.TaskSummary,
					Summary: summary,
				}, ""); err != nil {
					return err
				}
				return printSummary(cmd, cctx, summary, false)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title for prompt context and fallback")
	cmd.Flags().StringVar(&channel, "channel", "", "Channel name for fallback context")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even if a summary is already stored")
	return cmd
}

func printSummary(cmd *cobra.Command, cctx *commandContext, summary *generation.Summary, reused bool) error {
	if cctx.jsonOutput() {
		return writeJSON(cmd, map[string]any{
			"reused":     reused,
			"confidence": string(summary.Confidence),
			"text":       summary.Text,
		})
	}
	out := cmd.OutOrStdout()
	if reused {
		fmt.Fprintln(out, "Using stored summary (pass --force to regenerate)")
	}
	fmt.Fprintln(out, summary.Text)
	return nil
}
