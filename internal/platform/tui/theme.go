package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// CandyTheme contains all configurable visual styles for the candy menus.
type CandyTheme struct {
	// Candy token colors
	RedCandy    lipgloss.Style
	OrangeCandy lipgloss.Style
	YellowCandy lipgloss.Style
	GreenCandy  lipgloss.Style
	BlueCandy   lipgloss.Style
	PurpleCandy lipgloss.Style

	// Layout preview styles
	PreviewOpen     lipgloss.Style
	PreviewObstacle lipgloss.Style

	// Control hints line
	HUDControls lipgloss.Style

	// Mode picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultCandyTheme returns the default visual theme.
func DefaultCandyTheme() CandyTheme {
	return CandyTheme{
		// Candy colors - vibrant and distinct
		RedCandy:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Bright red
		OrangeCandy: lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // Orange
		YellowCandy: lipgloss.NewStyle().Foreground(lipgloss.Color("226")), // Bright yellow
		GreenCandy:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
		BlueCandy:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Deep sky blue
		PurpleCandy: lipgloss.NewStyle().Foreground(lipgloss.Color("135")), // Medium purple

		// Layout preview
		PreviewOpen:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		PreviewObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // Medium gray

		// Control hints
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		// Mode picker
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NeonCandyTheme returns a neon-style theme.
func NeonCandyTheme() CandyTheme {
	theme := DefaultCandyTheme()
	theme.RedCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("199"))    // Neon pink
	theme.OrangeCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Neon orange
	theme.YellowCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("227")) // Neon yellow
	theme.GreenCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))  // Neon green
	theme.BlueCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("87"))    // Neon cyan
	theme.PurpleCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("171")) // Neon purple
	return theme
}

// PastelCandyTheme returns a softer pastel theme.
func PastelCandyTheme() CandyTheme {
	theme := DefaultCandyTheme()
	theme.RedCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("217"))    // Pastel pink
	theme.OrangeCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("223")) // Pastel peach
	theme.YellowCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("229")) // Pastel yellow
	theme.GreenCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("157"))  // Pastel green
	theme.BlueCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("123"))   // Pastel cyan
	theme.PurpleCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("183")) // Pastel purple
	return theme
}

// MonochromeCandyTheme returns a grayscale theme.
func MonochromeCandyTheme() CandyTheme {
	theme := DefaultCandyTheme()
	theme.RedCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.OrangeCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	theme.YellowCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.GreenCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	theme.BlueCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	theme.PurpleCandy = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
	return theme
}

// Global theme variable (can be changed at runtime)
var candyTheme = DefaultCandyTheme()

// SetCandyTheme sets the global theme.
func SetCandyTheme(theme CandyTheme) {
	candyTheme = theme
}

// GetCandyTheme returns the current global theme.
func GetCandyTheme() CandyTheme {
	return candyTheme
}

// CandyThemeByName looks up a theme by the name used on the command line.
func CandyThemeByName(name string) (CandyTheme, bool) {
	switch name {
	case "", "default":
		return DefaultCandyTheme(), true
	case "neon":
		return NeonCandyTheme(), true
	case "pastel":
		return PastelCandyTheme(), true
	case "mono":
		return MonochromeCandyTheme(), true
	}
	return CandyTheme{}, false
}
