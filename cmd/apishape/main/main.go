package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/apishape/cmd/apishape"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

func main() {
	rootCmd := apishape.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		line := apishape.MsgErrPrefix + err.Error()
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			errorStyle := lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).
				Bold(true)
			line = errorStyle.Render(line)
		}
		fmt.Fprintln(os.Stderr, line)
		os.Exit(1)
	}
}
