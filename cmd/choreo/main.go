// Command choreo drives the animation sequencing engine from the terminal:
// it plays named sequence configurations against a real frame driver and
// reports the recorded performance metrics.
package main

import (
	"os"

	"github.com/go-drift/choreo/cmd/choreo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
