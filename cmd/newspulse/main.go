package main

import (
	"context"
	"os"

	"NewsPulse/internal/cli"
)

var version = "dev"

func main() {
	ctx := context.Background()

	if err := cli.Run(ctx, os.Args, version); err != nil {
		os.Exit(1)
	}
}
