package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously analyzed documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := apiClient.History(context.Background())
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No files uploaded yet")
			return nil
		}

		fmt.Printf("%-38s %-30s %s\n", "ID", "FILENAME", "CREATED")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, entry := range entries {
			fmt.Printf("%-38s %-30s %s\n", entry.ID, entry.Filename, entry.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}
