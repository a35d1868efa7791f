package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

func shapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shape [file]",
		Short: "Route a JSON payload and print the shape decision",
		Long:  "Routes a JSON payload read from the given file, or from stdin when the argument is - or omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, args)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			comment, _ := cmd.Flags().GetString("comment")
			compress, _ := cmd.Flags().GetBool("compress")

			decision, err := app.StructuredUC.Route(cmd.Context(), domain.StructuredSubmission{
				Payload:  payload,
				Comment:  comment,
				Compress: compress,
			})
			if err != nil {
				return err
			}
			return printDecision(decision)
		},
	}

	cmd.Flags().StringP("comment", "c", "", "Free-text hint attached to the payload")
	cmd.Flags().Bool("compress", false, "Gzip the payload before storage")

	return cmd
}

func readPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
