package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme holds all adaptive color definitions for the TUI
type ColorScheme struct {
	// Title and branding
	Title     lipgloss.AdaptiveColor
	BrandMark string // Pre-rendered gradient mark
	Version   lipgloss.AdaptiveColor

	// Input prompt
	Prompt lipgloss.AdaptiveColor

	// Suggestions and results
	Normal     lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
	SelectedBg lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor // Query term highlighting
	Snippet    lipgloss.AdaptiveColor
	Category   lipgloss.AdaptiveColor
	URL        lipgloss.AdaptiveColor
	Group      lipgloss.AdaptiveColor // Suggestion group headings

	// Filter tabs and pagination
	Tab       lipgloss.AdaptiveColor
	TabActive lipgloss.AdaptiveColor
	Disabled  lipgloss.AdaptiveColor

	// Status and counts
	Count       lipgloss.AdaptiveColor
	CountActive lipgloss.AdaptiveColor

	Cursor lipgloss.AdaptiveColor

	// Status indicators
	StatusActive lipgloss.AdaptiveColor // Green while indexing
	StatusError  lipgloss.AdaptiveColor // Red when the index is unavailable
	StatusIdle   lipgloss.AdaptiveColor

	// Help text
	Help lipgloss.AdaptiveColor
}

// NewColorScheme creates a new color scheme with adaptive colors for terminal theme
func NewColorScheme() *ColorScheme {
	return &ColorScheme{
		Title: lipgloss.AdaptiveColor{
			Light: "#0B5394",
			Dark:  "#6FC3DF",
		},

		// Brand gradient mark (generated once)
		BrandMark: renderBrandMark(),

		Version: lipgloss.AdaptiveColor{
			Light: "#666666",
			Dark:  "#6967A3",
		},

		Prompt: lipgloss.AdaptiveColor{
			Light: "#0E7C66",
			Dark:  "#3DDC97",
		},

		Normal: lipgloss.AdaptiveColor{
			Light: "#1A1A1A", // Almost black for light backgrounds
			Dark:  "#F7F1FF", // Off-white for dark backgrounds
		},

		Selected: lipgloss.AdaptiveColor{
			Light: "#000000",
			Dark:  "#E4E4E4",
		},

		SelectedBg: lipgloss.AdaptiveColor{
			Light: "#E0E0E0",
			Dark:  "#303030",
		},

		Highlight: lipgloss.AdaptiveColor{
			Light: "#D97706", // Orange for light backgrounds
			Dark:  "#FCE566", // Yellow for dark backgrounds
		},

		Snippet: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#999999",
		},

		Category: lipgloss.AdaptiveColor{
			Light: "#7C3AED",
			Dark:  "#B39DF3",
		},

		URL: lipgloss.AdaptiveColor{
			Light: "#0E7C66",
			Dark:  "#5FB89A",
		},

		Group: lipgloss.AdaptiveColor{
			Light: "#525252",
			Dark:  "#8A8A8A",
		},

		Tab: lipgloss.AdaptiveColor{
			Light: "#525252",
			Dark:  "#A3A3A3",
		},

		TabActive: lipgloss.AdaptiveColor{
			Light: "#0B5394",
			Dark:  "#6FC3DF",
		},

		Disabled: lipgloss.AdaptiveColor{
			Light: "#A3A3A3",
			Dark:  "#5A5A5A",
		},

		Count: lipgloss.AdaptiveColor{
			Light: "#666666",
			Dark:  "#6967A3",
		},

		CountActive: lipgloss.AdaptiveColor{
			Light: "#D97706",
			Dark:  "#FCE566",
		},

		Cursor: lipgloss.AdaptiveColor{
			Light: "#0E7C66",
			Dark:  "#3DDC97",
		},

		StatusActive: lipgloss.AdaptiveColor{
			Light: "#16A34A",
			Dark:  "#7BD88F",
		},

		StatusError: lipgloss.AdaptiveColor{
			Light: "#DC2626",
			Dark:  "#FC618D",
		},

		StatusIdle: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#666666",
		},

		Help: lipgloss.AdaptiveColor{
			Light: "#737373",
			Dark:  "#666666",
		},
	}
}

// renderBrandMark creates the gradient mark █▓▒░
// Colors: #0B5394 (0%) → #1FA38A (50%) → #3DDC97 (100%)
func renderBrandMark() string {
	stops := []struct {
		position float64
		color    [3]int // RGB
	}{
		{0.0, [3]int{0x0B, 0x53, 0x94}},
		{0.5, [3]int{0x1F, 0xA3, 0x8A}},
		{1.0, [3]int{0x3D, 0xDC, 0x97}},
	}

	// Characters from darkest to lightest
	chars := []string{"█", "▓", "▒", "░"}

	var result string
	for i, char := range chars {
		position := float64(i) / float64(len(chars)-1)

		// Find the two stops to interpolate between
		var start, end int
		for j := 0; j < len(stops)-1; j++ {
			if position >= stops[j].position && position <= stops[j+1].position {
				start = j
				end = j + 1
				break
			}
		}

		localPos := (position - stops[start].position) / (stops[end].position - stops[start].position)

		r := int(float64(stops[start].color[0]) + float64(stops[end].color[0]-stops[start].color[0])*localPos)
		g := int(float64(stops[start].color[1]) + float64(stops[end].color[1]-stops[start].color[1])*localPos)
		b := int(float64(stops[start].color[2]) + float64(stops[end].color[2]-stops[start].color[2])*localPos)

		color := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
		result += lipgloss.NewStyle().Foreground(color).Render(char)
	}

	return result
}

// GetStyles returns pre-configured lipgloss styles using the color scheme
func (cs *ColorScheme) GetStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(cs.Title),

		Version: lipgloss.NewStyle().
			Foreground(cs.Version),

		Prompt: lipgloss.NewStyle().
			Foreground(cs.Prompt),

		Normal: lipgloss.NewStyle().
			Foreground(cs.Normal),

		Selected: lipgloss.NewStyle().
			Foreground(cs.Selected).
			Background(cs.SelectedBg),

		Highlight: lipgloss.NewStyle().
			Foreground(cs.Highlight).
			Bold(true),

		Snippet: lipgloss.NewStyle().
			Foreground(cs.Snippet).
			Italic(true),

		Category: lipgloss.NewStyle().
			Foreground(cs.Category),

		URL: lipgloss.NewStyle().
			Foreground(cs.URL).
			Underline(true),

		Group: lipgloss.NewStyle().
			Foreground(cs.Group).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(cs.Tab).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(cs.TabActive).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Disabled: lipgloss.NewStyle().
			Foreground(cs.Disabled),

		Count: lipgloss.NewStyle().
			Foreground(cs.Count),

		CountActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(cs.CountActive),

		Cursor: lipgloss.NewStyle().
			Foreground(cs.Cursor).
			Bold(true),

		StatusActive: lipgloss.NewStyle().
			Foreground(cs.StatusActive),

		StatusError: lipgloss.NewStyle().
			Foreground(cs.StatusError),

		StatusIdle: lipgloss.NewStyle().
			Foreground(cs.StatusIdle),

		Help: lipgloss.NewStyle().
			Foreground(cs.Help),
	}
}

// Styles holds pre-configured lipgloss styles
type Styles struct {
	Title        lipgloss.Style
	Version      lipgloss.Style
	Prompt       lipgloss.Style
	Normal       lipgloss.Style
	Selected     lipgloss.Style
	Highlight    lipgloss.Style
	Snippet      lipgloss.Style
	Category     lipgloss.Style
	URL          lipgloss.Style
	Group        lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Disabled     lipgloss.Style
	Count        lipgloss.Style
	CountActive  lipgloss.Style
	Cursor       lipgloss.Style
	StatusActive lipgloss.Style
	StatusError  lipgloss.Style
	StatusIdle   lipgloss.Style
	Help         lipgloss.Style
}
