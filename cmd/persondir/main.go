package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rcliao/persondir/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
