// Package main provides the realapps CLI entry point.
package main

import (
	"os"

	"github.com/raphaelgruber/realapps-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
