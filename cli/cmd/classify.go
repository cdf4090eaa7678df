// ABOUTME: Classify command for the separator CLI
// ABOUTME: Uploads a well spreadsheet, prints recommendations and optionally watches for edits

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/spf13/cobra"
)

// watchDebounce collapses the burst of events editors emit on save
const watchDebounce = 300 * time.Millisecond

var (
	watchFile  bool
	reportPath string
)

var classifyCmd = &cobra.Command{
	Use:   "classify FILE",
	Short: "Recommend separator types for a spreadsheet of wells",
	Long: `Upload a .xlsx or .csv well table and print a vertical or horizontal
separator recommendation for every row.

With --watch the file is re-classified each time it is saved.

Example:
  separator classify wells.xlsx --report wells.pdf`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := client.New(GetAPIURL())
		run := runClassify
		if watchFile {
			run = watchClassify
		}
		exitWith(func(ctx context.Context) int {
			return run(ctx, c, os.Stdout, args[0], reportPath, IsJSONOutput())
		})
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Re-classify whenever the file changes")
	classifyCmd.Flags().StringVar(&reportPath, "report", "", "Also download the PDF report to this path")
}

// runClassify classifies path once and returns exit code
func runClassify(ctx context.Context, c *client.Client, w io.Writer, path, report string, jsonOut bool) int {
	result, err := c.ClassifyFile(ctx, path)
	if err != nil {
		return fail(w, err)
	}

	if jsonOut {
		if err := writeJSON(w, result); err != nil {
			return fail(w, err)
		}
	} else {
		writeClassification(w, result)
	}

	if report != "" {
		if err := c.SaveReport(ctx, result.BatchID, report); err != nil {
			return fail(w, err)
		}
		if !jsonOut {
			fmt.Fprintf(w, "\nReport written to %s\n", report)
		}
	}

	return exitOK
}

// watchClassify classifies path, then again after every save until ctx is
// cancelled. Classification failures while watching are reported and the
// watch continues.
func watchClassify(ctx context.Context, c *client.Client, w io.Writer, path, report string, jsonOut bool) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fail(w, err)
	}
	defer watcher.Close()

	// Watch the directory so atomic saves that replace the file are seen
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fail(w, fmt.Errorf("cannot watch %s: %w", dir, err))
	}

	runClassify(ctx, c, w, path, report, jsonOut)
	fmt.Fprintf(w, "\nWatching %s for changes (Ctrl+C to stop)\n", path)

	target := filepath.Clean(path)
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return exitOK

		case event, ok := <-watcher.Events:
			if !ok {
				return exitOK
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			debounce = time.After(watchDebounce)

		case <-debounce:
			debounce = nil
			fmt.Fprintf(w, "\n%s changed, re-classifying\n\n", path)
			runClassify(ctx, c, w, path, report, jsonOut)

		case err, ok := <-watcher.Errors:
			if !ok {
				return exitOK
			}
			fmt.Fprintf(w, "Watch error: %v\n", err)
		}
	}
}

// writeClassification prints one line per well in input order
func writeClassification(w io.Writer, result *models.ClassificationResponse) {
	fmt.Fprintf(w, "Batch %s (%d wells)\n\n", result.BatchID, result.Count)
	fmt.Fprintf(w, "%4s  %-10s  %4s  %10s  %9s  %s\n", "#", "Type", "Rule", "GOR", "Water cut", "Reason")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(w, "%4d  %-10s  %4d  %10.2f  %8.2f%%  %s\n",
			i+1, rec.SeparatorType, rec.Rule, rec.GOR, rec.WaterCut*100, rec.Reason)
	}
}
