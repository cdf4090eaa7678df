// ABOUTME: TUI command for the separator CLI
// ABOUTME: Starts the interactive sizing and classification screens

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/markalston/separator-sizer/cli/internal/tui"
	"github.com/markalston/separator-sizer/cli/internal/tui/debuglog"
	"github.com/markalston/separator-sizer/cli/internal/tui/recentfiles"
	"github.com/spf13/cobra"
)

// probeTimeout bounds the startup health check
const probeTimeout = 3 * time.Second

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive interface",
	Long: `Start the interactive interface for sizing separators and classifying
well spreadsheets.

Sizing and classification are disabled when the backend does not answer the
startup health check. Errors are logged to debug.log in the config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := client.New(GetAPIURL())
		online := probeBackend(context.Background(), c, os.Stderr)

		if err := debuglog.Init(recentfiles.DefaultConfigDir()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		}
		defer debuglog.Close()

		if err := tui.Run(c, online); err != nil {
			code := fail(os.Stderr, err)
			debuglog.Close()
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// probeBackend reports whether the backend answers a health check, printing
// a warning to w when it does not
func probeBackend(ctx context.Context, c *client.Client, w io.Writer) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := c.Health(ctx); err != nil {
		fmt.Fprintf(w, "Warning: %v\n", err)
		return false
	}
	return true
}
