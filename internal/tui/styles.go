package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	subtleFg  = lipgloss.Color("#0B0F14")
	selectFg  = lipgloss.Color("#F97316")
	pivotFg   = lipgloss.Color("#22D3EE")
	errFg     = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")

	appStyle      = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(baseDimFg)
	selectedStyle = lipgloss.NewStyle().Foreground(selectFg).Bold(true)
	pivotStyle    = lipgloss.NewStyle().Foreground(pivotFg).Bold(true)
	polygonStyle  = lipgloss.NewStyle().Foreground(selectFg)
	errStyle      = lipgloss.NewStyle().Foreground(errFg)
	modeStyle     = lipgloss.NewStyle().Foreground(subtleFg).Background(accentFg).Padding(0, 1)
)
