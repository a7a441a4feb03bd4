package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/dotnet-test/internal/cmd"
	"github.com/harrison/dotnet-test/internal/executor"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(executor.ExitCodeFor(err))
	}
}
