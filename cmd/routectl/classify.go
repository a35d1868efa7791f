package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Route a media artifact and print the decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}

			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			comment, _ := cmd.Flags().GetString("comment")
			compress, _ := cmd.Flags().GetBool("compress")

			decision, err := app.MediaUC.Route(cmd.Context(), domain.MediaSubmission{
				Filename: filepath.Base(args[0]),
				Data:     data,
				Comment:  comment,
				Compress: compress,
			})
			if err != nil {
				return err
			}
			return printDecision(decision)
		},
	}

	cmd.Flags().StringP("comment", "c", "", "Free-text hint attached to the artifact")
	cmd.Flags().Bool("compress", false, "Gzip the artifact before storage")

	return cmd
}
