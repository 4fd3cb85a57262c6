package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download the generated summary PDF for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output file (default docsight-summary-<id>.pdf)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	id := args[0]

	out := downloadOutput
	if out == "" {
		out = fmt.Sprintf("docsight-summary-%s.pdf", id)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := apiClient.Download(context.Background(), id, f); err != nil {
		os.Remove(out)
		return fmt.Errorf("download: %w", err)
	}

	fmt.Printf("Saved %s\n", out)
	return nil
}
