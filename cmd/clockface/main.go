// Command clockface runs the clock in a terminal and renders snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/clockface/cmd/clockface/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
