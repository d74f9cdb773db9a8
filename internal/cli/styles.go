// Package cli provides styled terminal output and prompts for the dompet commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#2D9CDB")
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#27AE60")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#EB5757")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F2C94C")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#828282")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SectionStyle is used for history bucket headings.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SubtleColor).
			MarginTop(1)

	IncomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// BalanceStyle renders the headline balance figure.
	BalanceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// BoxStyle is used for the summary card.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InIcon      = "↓"
	OutIcon     = "↑"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return IncomeStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ExpenseStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " ")
}

// FormatDirection renders an amount that has already been formatted, colored
// and marked by direction.
func FormatDirection(incoming bool, amount string) string {
	if incoming {
		return IncomeStyle.Render(InIcon + " +" + amount)
	}
	return ExpenseStyle.Render(OutIcon + " -" + amount)
}

// RenderBox renders content in a styled box under a title.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render(title),
		content,
	))
}
