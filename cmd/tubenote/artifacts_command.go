package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tubenote/internal/artifacts"
)

func newArtifactsCommand(cctx *commandContext) *cobra.Command {
	artifactsCmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Inspect stored generation results",
	}

	artifactsCmd.AddCommand(newArtifactsListCommand(cctx))
	artifactsCmd.AddCommand(newArtifactsShowCommand(cctx))
	artifactsCmd.AddCommand(newArtifactsRemoveCommand(cctx))

	return artifactsCmd
}

func newArtifactsListCommand(cctx *commandContext) *cobra.Command {
	var videoID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(store *artifacts.Store) error {
				list, err := store.List(cmd.Context(), videoID)
				if err != nil {
					return err
				}

				if cctx.jsonOutput() {
					views := make([]map[string]any, 0, len(list))
					for _, artifact := range list {
						views = append(views, artifactListView(artifact))
					}
					return writeJSON(cmd, map[string]any{"artifacts": views})
				}

				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No artifacts stored")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, artifact := range list {
					rows = append(rows, []string{
						strconv.FormatInt(artifact.ID, 10),
						artifact.VideoID,
						artifact.Task,
						artifact.Subtype,
						artifact.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Video", "Task", "Subtype", "Updated"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&videoID, "video", "", "Only list artifacts for this video")
	return cmd
}

func artifactListView(artifact *artifacts.Artifact) map[string]any {
	return map[string]any{
		"id":         artifact.ID,
		"video_id":   artifact.VideoID,
		"task":       artifact.Task,
		"subtype":    artifact.Subtype,
		"model":      artifact.Model,
		"created_at": artifact.CreatedAt,
		"updated_at": artifact.UpdatedAt,
	}
}

func newArtifactsShowCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored artifact's payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid artifact id %q", args[0])
			}
			return cctx.withStore(func(store *artifacts.Store) error {
				artifact, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if artifact == nil {
					return fmt.Errorf("artifact %d not found", id)
				}
				view := artifactListView(artifact)
				view["request_id"] = artifact.RequestID
				view["payload"] = artifact.Payload
				return writeJSON(cmd, view)
			})
		},
	}
}

func newArtifactsRemoveCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a stored artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid artifact id %q", args[0])
			}
			return cctx.withStore(func(store *artifacts.Store) error {
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("artifact %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed artifact %d\n", id)
				return nil
			})
		},
	}
}
