// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")  // focus
	colorGreen = lipgloss.Color("35")  // done
	colorRed   = lipgloss.Color("167") // failures
	colorGray  = lipgloss.Color("245") // labels
	colorDim   = lipgloss.Color("240") // help
	colorWhite = lipgloss.Color("255") // values
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(26)
	styleFocused = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Width(26)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleHelp    = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleButton  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	styleButtonF = styleButton.BorderForeground(colorCyan).Foreground(colorCyan).Bold(true)
)
