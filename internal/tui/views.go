package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/dompet/internal/history"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
)

// chromeHeight is the number of lines used around the transaction list.
const chromeHeight = 11

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.Muted.Render("Loading wallet...")
	}

	sections := []string{
		m.renderSummary(),
		m.renderFilters(),
		m.renderList(),
		m.renderFooter(),
		m.renderStatus(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSummary() string {
	if m.snapshot == nil {
		return m.theme.Card.Render(m.theme.Muted.Render("No data"))
	}

	balance := lipgloss.JoinHorizontal(lipgloss.Bottom,
		m.theme.Subtitle.Render("Balance  "),
		m.theme.Balance.Render(ledger.FormatAmount(m.snapshot.Balance)),
	)
	totals := lipgloss.JoinHorizontal(lipgloss.Bottom,
		m.theme.Income.Render("In "+ledger.FormatAmount(m.snapshot.TotalIn)),
		"   ",
		m.theme.Expense.Render("Out "+ledger.FormatAmount(m.snapshot.TotalOut)),
	)
	return m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, balance, totals))
}

func (m Model) renderFilters() string {
	switch m.state {
	case StateCategoryQuery, StateDateQuery:
		return m.input.View()
	case StateConfirmDelete:
		return m.theme.Prompt.Render(fmt.Sprintf("Delete transaction #%d? [y/N]", m.pendingID))
	}

	filter := m.window.Filter()
	if filter.IsZero() {
		return m.theme.Muted.Render("No filters")
	}

	var parts []string
	if q := strings.TrimSpace(filter.Category); q != "" {
		parts = append(parts, fmt.Sprintf("category contains %q", q))
	}
	if d := strings.TrimSpace(filter.Date); d != "" {
		parts = append(parts, "on "+d)
	}
	return m.theme.StatusInfo.Render("Filter: " + strings.Join(parts, ", "))
}

func (m Model) renderList() string {
	groups := m.window.Groups(m.config.Now())
	if len(groups) == 0 {
		return m.theme.Muted.Render("No transactions")
	}

	var (
		lines    []string
		selected int
		index    int
	)
	for _, group := range groups {
		lines = append(lines, m.theme.Section.Render(group.Title()))
		for _, txn := range group.Transactions {
			if index == m.cursor {
				selected = len(lines)
			}
			lines = append(lines, m.renderRow(txn, index == m.cursor))
			index++
		}
	}

	return strings.Join(visibleLines(lines, selected, m.height-chromeHeight), "\n")
}

func (m Model) renderRow(txn model.Transaction, selected bool) string {
	amount := ledger.FormatAmount(txn.Amount)
	if txn.Type == model.DirectionIn {
		amount = m.theme.Income.Render("+" + amount)
	} else {
		amount = m.theme.Expense.Render("-" + amount)
	}

	label := txn.Category
	if txn.Description != "" {
		label += m.theme.Muted.Render(" · " + txn.Description)
	}

	row := fmt.Sprintf("%-5s  #%-5d %-28s %s",
		history.FormatClock(txn.Date, m.config.Location), txn.ID, label, amount)
	if selected {
		return m.theme.Selected.Render("› ") + row
	}
	return "  " + row
}

func (m Model) renderFooter() string {
	shown := fmt.Sprintf("Showing %d of %d", len(m.window.Visible()), len(m.window.Filtered()))
	if m.window.HasMore() {
		shown += " (m for more)"
	}
	return m.theme.Muted.Render(shown)
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return m.theme.StatusError.Render("Error: " + m.lastError.Error())
	}
	return m.theme.StatusInfo.Render(m.status)
}

// visibleLines returns at most limit lines around the selected one.
func visibleLines(lines []string, selected, limit int) []string {
	if limit < 5 {
		limit = 5
	}
	if len(lines) <= limit {
		return lines
	}

	start := selected - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > len(lines) {
		start = len(lines) - limit
	}
	return lines[start : start+limit]
}
