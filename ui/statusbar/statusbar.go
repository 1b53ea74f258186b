package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions for the status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Reverse(true) // Invert colors for status bar look

	statusTextStyle = lipgloss.NewStyle().Inherit(statusBarStyle)

	separatorStyle = statusTextStyle.Foreground(lipgloss.Color("240")) // Dim gray

	stateStyle = statusTextStyle.Bold(true)
	errorStyle = statusTextStyle.Foreground(lipgloss.Color("9"))
)

// Values reported for the last activation of the focused control.
const (
	PreventedIdle = "idle"
	PreventedYes  = "yes"
	PreventedNo   = "no"
)

// StatusData holds the information for the status bar
type StatusData struct {
	State          string // "idle" or "armed" for the focused control
	Prevented      string // PreventedIdle, PreventedYes or PreventedNo
	Presses        int    // confirmed activations so far
	Err            error
	CustomMessages []string
}

// Render creates the status bar string
func Render(width int, data StatusData) string {
	if width <= 0 {
		return ""
	}

	sep := separatorStyle.Render(" │ ")

	prevented := data.Prevented
	if prevented == "" {
		prevented = PreventedIdle
	}
	left := strings.Join([]string{
		stateStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(data.State))),
		fmt.Sprintf(" Default Prevented: %s ", prevented),
	}, sep)

	right := fmt.Sprintf(" Presses: %d ", data.Presses)
	if data.Err != nil {
		right = errorStyle.Render(fmt.Sprintf(" Error: %v ", data.Err)) + sep + right
	}
	customStr := strings.Join(data.CustomMessages, sep)

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	customWidth := lipgloss.Width(customStr)

	fixedWidth := leftWidth + rightWidth
	if customWidth > 0 {
		fixedWidth += lipgloss.Width(sep) + customWidth
	}

	paddingWidth := width - fixedWidth
	if paddingWidth < 0 {
		paddingWidth = 0
	}

	var middle string
	if customWidth > 0 {
		middle = sep + customStr + strings.Repeat(" ", paddingWidth)
	} else {
		middle = strings.Repeat(" ", paddingWidth)
	}

	return statusBarStyle.Width(width).Render(left + middle + right)
}
