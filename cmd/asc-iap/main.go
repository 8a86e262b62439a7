// Package main is the entry point for the asc-iap CLI.
package main

import (
	"os"

	"github.com/donaldgifford/asc-iap/cmd/asc-iap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
