package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tubenote/internal/artifacts"
	"tubenote/internal/generation"
	"tubenote/internal/services"
)

type commentInput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newCategorizeCommand(cctx *commandContext) *cobra.Command {
	var title string
	var commentsPath string
	var videoID string

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize YouTube comments",
		Long: `Categorize a batch of comments as funny, informative, emotional, or
relatable. Comments are read as a JSON array of {"id", "text"} objects from
the file given with --comments, or from stdin when the path is "-".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := readComments(cmd, commentsPath)
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
				categorized, err := pipeline.CategorizeComments(services.WithRequestID(ctx, requestID), comments, title)
				if err != nil {
					return err
				}
				if videoID != "" {
					if err := saveResult(ctx, store, cctx, videoID, requestID, generation.Result{
						Task:     generation.TaskCommentCategorization,
						Comments: categorized,
					}, ""); err != nil {
						return err
					}
				}
				return printCategorized(cmd, cctx, categorized)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title for prompt context")
	cmd.Flags().StringVar(&commentsPath, "comments", "-", `Path to a JSON comment file ("-" for stdin)`)
	cmd.Flags().StringVar(&videoID, "video", "", "Video ID to store the result under (optional)")
	return cmd
}

func readComments(cmd *cobra.Command, path string) ([]generation.Comment, error) {
	var reader io.Reader
	if path == "" || path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open comments file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var inputs []commentInput
	if err := json.NewDecoder(reader).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("parse comments: %w", err)
	}

	comments := make([]generation.Comment, 0, len(inputs))
	for i, input := range inputs {
		id := input.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		comments = append(comments, generation.Comment{ID: id, Text: input.Text})
	}
	return comments, nil
}

var categoryTitle = cases.Title(language.English)

func displayCategory(category generation.Category) string {
	if category == generation.CategoryUnassigned {
		return "-"
	}
	return categoryTitle.String(string(category))
}

func printCategorized(cmd *cobra.Command, cctx *commandContext, categorized []generation.CategorizedComment) error {
	if cctx.jsonOutput() {
		views := make([]map[string]string, 0, len(categorized))
		for _, comment := range categorized {
			views = append(views, map[string]string{
				"id":       comment.ID,
				"text":     comment.Text,
				"category": string(comment.Category),
			})
		}
		return writeJSON(cmd, map[string]any{"comments": views})
	}

	rows := make([][]string, 0, len(categorized))
	for i, comment := range categorized {
		text := comment.Text
		if runes := []rune(text); len(runes) > 60 {
			text = strings.TrimSpace(string(runes[:60])) + "..."
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			comment.ID,
			displayCategory(comment.Category),
			text,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"#", "ID", "Category", "Comment"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
