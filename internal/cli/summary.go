package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docsight/internal/client"
	"docsight/internal/tui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <job-id>",
	Short: "Print the structured summary for a completed job",
	Long: `Fetch the analysis result for a job and print the structured summary.

Example:
  docsight summary 6f1c2a`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	id := args[0]

	res, err := apiClient.Result(context.Background(), id)
	if err != nil {
		return fmt.Errorf("fetch result: %w", err)
	}

	switch res.Status {
	case client.StatusCompleted:
		fmt.Printf("Document: %s\n\n", res.Filename)
		fmt.Println(tui.RenderSummary(terminalWidth(), res))
		return nil
	case client.StatusError:
		return fmt.Errorf("job %s could not be processed", id)
	default:
		fmt.Printf("Job %s is still processing. Use 'docsight watch %s' to follow it.\n", id, id)
		return nil
	}
}
