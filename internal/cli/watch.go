package cli

import (
	"github.com/spf13/cobra"

	"docsight/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Follow a job's processing state interactively",
	Long: `Open the interactive processing view for a job. The view polls the
service every two seconds and switches to the summary once processing has
completed. Works for already-completed jobs too: the first status check
forwards straight to the result.

Example:
  docsight watch 6f1c2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.NewJobApp(apiClient, logger, args[0]))
	},
}
