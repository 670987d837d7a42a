// Command buildlens analyzes Bazel JSON trace profiles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/buildlens/internal/cli"
)

func main() {
	// BUILDLENS_* settings may live in a local .env file.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
