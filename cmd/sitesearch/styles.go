package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Brand colors
var (
	// Brand teal: #1FA38A
	brandTeal = lipgloss.Color("#1FA38A")
	// Success green
	successGreen = lipgloss.Color("#00C853")
	// Warning yellow
	warningYellow = lipgloss.Color("#FFC107")
	// Info blue
	infoBlue = lipgloss.Color("#2196F3")
	// Muted gray
	mutedGray = lipgloss.Color("#9E9E9E")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(brandTeal).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningYellow).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	urlStyle = lipgloss.NewStyle().
			Foreground(infoBlue)
)

// printSection prints a styled section header
func printSection(w io.Writer, text string) {
	fmt.Fprintln(w, sectionStyle.Render(text))
}

// printSuccess prints a success message
func printSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render("✓ "+text))
}

// printWarning prints a warning message
func printWarning(w io.Writer, text string) {
	fmt.Fprintln(w, warningStyle.Render("⚠️  "+text))
}

// printMuted prints muted text
func printMuted(w io.Writer, text string) {
	fmt.Fprintln(w, mutedStyle.Render(text))
}

// printURL prints a styled URL
func printURL(w io.Writer, link string) {
	fmt.Fprintln(w, urlStyle.Render(link))
}

// printBullet prints a bullet point
func printBullet(w io.Writer, text string) {
	fmt.Fprintln(w, "• "+text)
}
