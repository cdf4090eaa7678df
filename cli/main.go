// ABOUTME: Entry point for the separator CLI
// ABOUTME: Sizes separators and classifies wells through the backend API

package main

import (
	"os"

	"github.com/markalston/separator-sizer/cli/cmd"
)

func main() {
	// cobra has already printed usage errors
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
