package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#A6E22E"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F07178"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#59C2FF"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#6C7680"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorPass)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFail)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}
