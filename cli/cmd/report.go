// ABOUTME: Report command for the separator CLI
// ABOUTME: Downloads the PDF report of a previously classified batch

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/spf13/cobra"
)

var outputPath string

var reportCmd = &cobra.Command{
	Use:   "report BATCH_ID",
	Short: "Download the PDF report for a classified batch",
	Long: `Download the A3 landscape PDF report for a batch returned by classify.

Batches expire on the backend after REPORT_TTL seconds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runReport(ctx, client.New(GetAPIURL()), os.Stdout, args[0], outputPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: separator-report-BATCH_ID.pdf)")
}

// runReport downloads the report and returns exit code
func runReport(ctx context.Context, c *client.Client, w io.Writer, batchID, path string) int {
	if path == "" {
		path = client.ReportPath(batchID)
	}

	if err := c.SaveReport(ctx, batchID, path); err != nil {
		return fail(w, err)
	}

	fmt.Fprintf(w, "Report written to %s\n", path)
	return exitOK
}
