package main

import "github.com/charmbracelet/lipgloss"

// styles groups the terminal styles used across commands.
type styles struct {
	banner lipgloss.Style
	info   lipgloss.Style
	err    lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			banner: plain,
			info:   plain,
			err:    plain,
			label:  plain,
			value:  plain,
		}
	}
	return styles{
		banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		label:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
	}
}
