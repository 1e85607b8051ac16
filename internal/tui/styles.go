package tui

import "github.com/charmbracelet/lipgloss"

var (
	gold  = lipgloss.Color("#c9a227")
	muted = lipgloss.Color("#9a958a")

	brandStyle     = lipgloss.NewStyle().Foreground(gold).Bold(true)
	navStyle       = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	navActiveStyle = lipgloss.NewStyle().Foreground(gold).Bold(true).Underline(true).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(gold).Bold(true)
	heroStyle      = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0a0a0f")).Background(gold).Padding(0, 1)
	statStyle      = lipgloss.NewStyle().Align(lipgloss.Center)
	statNumStyle   = lipgloss.NewStyle().Foreground(gold).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(gold)
)
