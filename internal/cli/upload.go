package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docsight/internal/client"
	"docsight/internal/tui"
)

var (
	uploadTextFile string
	uploadWatch    bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Submit a document or raw text for analysis",
	Long: `Submit a document for analysis and print the job ID.

Exactly one input must be given: a file argument, or --text-file pointing at
a plain-text file whose contents are submitted as raw text. Raw text must be
at least 1000 and fewer than 100000 characters.

Examples:
  docsight upload report.pdf
  docsight upload report.pdf --watch
  docsight upload --text-file notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadTextFile, "text-file", "", "submit the contents of this file as raw text")
	uploadCmd.Flags().BoolVarP(&uploadWatch, "watch", "w", false, "follow processing interactively after upload")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if (len(args) == 1) == (uploadTextFile != "") {
		return fmt.Errorf("provide exactly one of a file argument or --text-file")
	}

	var (
		id  string
		err error
	)
	if len(args) == 1 {
		id, err = apiClient.UploadFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
	} else {
		data, readErr := os.ReadFile(uploadTextFile)
		if readErr != nil {
			return fmt.Errorf("read text file: %w", readErr)
		}
		id, err = apiClient.UploadText(ctx, string(data))
		if err != nil {
			if errors.Is(err, client.ErrTextTooShort) || errors.Is(err, client.ErrTextTooLong) {
				return err
			}
			return fmt.Errorf("upload failed: %w", err)
		}
	}

	fmt.Printf("Job %s submitted.\n", id)

	if uploadWatch {
		return tui.Run(tui.NewJobApp(apiClient, logger, id))
	}

	fmt.Printf("Use 'docsight watch %s' to follow processing.\n", id)
	return nil
}
