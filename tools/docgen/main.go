// Package main generates CLI reference documentation from the asc-iap
// command tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/asc-iap/cmd/asc-iap/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "output format: markdown or man")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	var err error
	switch *format {
	case "markdown":
		err = doc.GenMarkdownTree(root, *output)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{
			Title:   "ASC-IAP",
			Section: "1",
			Source:  "asc-iap " + cmd.Version,
		}, *output)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}
