package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/apishape/cmd/apishape"
	"github.com/arthur-debert/apishape/internal/version"
)

func main() {
	rootCmd := apishape.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "APISHAPE",
		Section: "1",
		Source:  version.ToolName + " " + version.Version,
		Manual:  version.ToolName + " manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
