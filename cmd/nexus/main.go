// Package main is the entry point for the nexus dashboard settings service.
package main

import (
	"os"

	"nexus/cmd/nexus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
