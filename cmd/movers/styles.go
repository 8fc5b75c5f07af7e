package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// LoadingStyle for the in-flight indicator.
	LoadingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))

	gainerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	loserStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// FormatChange formats the signed change with a direction indicator.
func FormatChange(stock types.Stock) string {
	change := stock.Change.StringFixed(2)

	switch {
	case stock.IsGainer():
		return "+" + change + " ▲"
	case stock.IsLoser():
		return change + " ▼"
	}

	return change
}

// FormatPercentage formats the signed percentage change.
func FormatPercentage(stock types.Stock) string {
	percent := stock.ChangesPercentage.StringFixed(2) + "%"
	if stock.ChangesPercentage.IsPositive() {
		return "+" + percent
	}

	return percent
}
