package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner prints the startup banner for the interactive chat.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal to blue gradient.
	lines := []struct {
		text  string
		color string
	}{
		{"  ______ _                             ", "#2dd4bf"},
		{" |  ____| |                            ", "#22d3ee"},
		{" | |__  | | ___  _ __ ___ _ __   ___ ___", "#38bdf8"},
		{" |  __| | |/ _ \\| '__/ _ \\ '_ \\ / __/ _ \\", "#60a5fa"},
		{" | |    | | (_) | | |  __/ | | | (_|  __/", "#818cf8"},
		{" |_|    |_|\\___/|_|  \\___|_| |_|\\___\\___|", "#a78bfa"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
