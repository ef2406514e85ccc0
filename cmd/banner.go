package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	bannerDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, bannerTitle.Render("hostdash "+formatVersion(version)))
	fmt.Fprintln(w, "=============================")
	fmt.Fprintln(w, "CPU, memory and disk usage with threading and error demos.")
	fmt.Fprintln(w, bannerDim.Render("Keys: 1-5 switch pages, q quits."))
	fmt.Fprintln(w)
	fmt.Fprint(w, "Press Enter to start...")
}
