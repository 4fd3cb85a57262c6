package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Print a job's current processing status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := apiClient.Status(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get status: %w", err)
		}
		fmt.Println(status)
		return nil
	},
}
