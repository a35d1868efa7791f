package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize a local store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir, _ := cmd.Flags().GetString("store"); dir == "" {
				return fmt.Errorf("stats requires --store")
			}

			app, err := buildApp(cmd)
			if err != nil {
				return err
			}

			stats, err := app.ReportUC.Stats(cmd.Context())
			if err != nil {
				return err
			}
			files, err := app.ReportUC.RecentFiles(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Storage used: %s of %s\n", stats.StorageUsed, stats.StorageTotal)
			fmt.Printf("Files processed: %d\n", stats.FilesProcessed)
			fmt.Printf("Last upload: %s\n", stats.LastUpload)
			if len(files) > 0 {
				fmt.Println("\nRecent files:")
				for _, f := range files {
					fmt.Printf("  %-36s %-10s %-24s %s\n", f.Name, f.Size, f.Category, f.Timestamp.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
