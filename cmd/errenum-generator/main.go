// Package main provides the CLI entrypoint for errenum-generator.
//
// errenum-generator is a Go codegen tool that:
//   - Loads declarative descriptions of error enums from YAML
//   - Resolves per-variant display, cause, and conversion policies
//   - Generates Error(), Unwrap(), and conversion functions
package main

import (
	"errors"
	"log/slog"
	"os"

	"errenum-generator/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		slog.Error(err.Error())

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(1)
	}
}
