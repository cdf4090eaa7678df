// ABOUTME: Health command for the separator CLI
// ABOUTME: Probes the backend and prints its version and cached report count

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runHealth(ctx, client.New(GetAPIURL()), os.Stdout, IsJSONOutput())
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// healthReport is the --json shape of the health command
type healthReport struct {
	Backend string `json:"backend"`
	*models.HealthResponse
}

func runHealth(ctx context.Context, c *client.Client, w io.Writer, jsonOut bool) int {
	resp, err := c.Health(ctx)
	if err != nil {
		return fail(w, err)
	}

	report := healthReport{Backend: c.BaseURL(), HealthResponse: resp}
	if jsonOut {
		if err := writeJSON(w, report); err != nil {
			return fail(w, err)
		}
		return exitOK
	}

	writeHealth(w, report)
	return exitOK
}

func writeHealth(w io.Writer, r healthReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Backend:\t%s\n", r.Backend)
	fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
	fmt.Fprintf(tw, "Version:\t%s\n", r.Version)
	fmt.Fprintf(tw, "Reports cached:\t%d\n", r.ReportsCached)
	tw.Flush()
}
