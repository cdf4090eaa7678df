// ABOUTME: Root command for the separator CLI
// ABOUTME: Global flags plus the helpers every subcommand shares

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "SEPARATOR_API_URL"

	exitOK    = 0
	exitError = 2
)

var (
	apiURL     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "separator",
	Short: "Size gravity separators and classify wells",
	Long: `separator talks to the Separator Sizer backend.

It sizes a gravity separator for one well stream, recommends vertical or
horizontal vessels for a spreadsheet of wells and saves PDF reports.

Exit codes:
  0  success
  2  connectivity, input or backend error

Environment:
  ` + apiURLEnv + `  backend URL (default ` + defaultAPIURL + `)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Backend URL, overrides "+apiURLEnv)
	flags.BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
}

// GetAPIURL resolves the backend URL: flag, then environment, then default.
func GetAPIURL() string {
	for _, candidate := range []string{apiURL, os.Getenv(apiURLEnv)} {
		if candidate != "" {
			return candidate
		}
	}
	return defaultAPIURL
}

// IsJSONOutput reports whether --json was given
func IsJSONOutput() bool {
	return jsonOutput
}

// exitWith runs fn under a context cancelled by SIGINT or SIGTERM and exits
// the process with its code when that code is non-zero.
func exitWith(fn func(ctx context.Context) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := fn(ctx)
	cancel()
	if code != exitOK {
		os.Exit(code)
	}
}

// fail prints err the way every command reports errors
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
