package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/co191194/todo-cli/api"
)

// Lipgloss styles, defined once at package level.
var (
	styleTitleBox = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2)

	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)

	styleStatusPending    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleStatusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleStatusCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	stylePriorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	stylePriorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
	stylePriorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// statusBadge renders a fixed-width status marker.
func statusBadge(s api.TodoStatus) string {
	switch s {
	case api.StatusCompleted:
		return styleStatusCompleted.Render("[done]")
	case api.StatusInProgress:
		return styleStatusInProgress.Render("[wip] ")
	default:
		return styleStatusPending.Render("[todo]")
	}
}

// priorityBadge renders the priority marker.
func priorityBadge(p api.TodoPriority) string {
	switch p {
	case api.PriorityHigh:
		return stylePriorityHigh.Render("!!!")
	case api.PriorityMedium:
		return stylePriorityMedium.Render("!! ")
	default:
		return stylePriorityLow.Render("!  ")
	}
}
