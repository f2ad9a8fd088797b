package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/theme"
)

// maxExcerptLen limits how much of the original message shows in the list.
const maxExcerptLen = 60

// CrisisItem wraps a model.CrisisRequest so it can be used in a bubbles/list.
type CrisisItem struct {
	Crisis model.CrisisRequest
}

// FilterValue returns the string used for fuzzy filtering.
func (i CrisisItem) FilterValue() string { return i.Crisis.OriginalMessage }

// Title returns the message excerpt for the list.
func (i CrisisItem) Title() string { return excerpt(i.Crisis.OriginalMessage) }

// Description returns a short summary line for the list.
func (i CrisisItem) Description() string {
	parts := []string{
		i.Crisis.UrgencyLevel,
		i.Crisis.Status,
		relativeTime(i.Crisis.CreatedAt),
	}
	return strings.Join(parts, " | ")
}

// CrisisDelegate implements list.ItemDelegate for rendering crisis rows.
type CrisisDelegate struct{}

// Height returns the number of lines each item takes.
func (d CrisisDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d CrisisDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d CrisisDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a two-line crisis row: badges plus message excerpt on the
// first line, need and location metadata on the second.
func (d CrisisDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(CrisisItem)
	if !ok {
		return
	}

	crisis := ci.Crisis
	isSelected := index == m.Index()

	urgencyBadge := theme.UrgencyStyle(crisis.UrgencyLevel).
		Render(strings.ToUpper(crisis.UrgencyLevel))
	statusBadge := theme.StatusStyle(crisis.Status).Render(crisis.Status)
	score := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(crisis.UrgencyScore)).
		Render(fmt.Sprintf("%.1f", crisis.UrgencyScore))

	top := fmt.Sprintf("%s %s %s %s",
		urgencyBadge, score, statusBadge, excerpt(crisis.OriginalMessage))

	meta := metaLine(crisis)
	bottom := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + meta)

	block := top + "\n" + bottom
	if isSelected {
		block = theme.SelectedItemStyle.Render(block)
	} else {
		block = theme.ListItemStyle.Render(block)
	}

	fmt.Fprint(w, block)
}

// metaLine assembles need type, quantity, location, and age.
func metaLine(crisis model.CrisisRequest) string {
	var parts []string
	if crisis.NeedType != "" {
		need := crisis.NeedType
		if crisis.Quantity != nil {
			need = fmt.Sprintf("%s x%d", need, *crisis.Quantity)
			if crisis.QuantityUnit != "" {
				need += " " + crisis.QuantityUnit
			}
		}
		parts = append(parts, need)
	}
	if crisis.LocationText != "" {
		parts = append(parts, crisis.LocationText)
	}
	if crisis.MessageSource != "" {
		parts = append(parts, "via "+crisis.MessageSource)
	}
	if t := relativeTime(crisis.CreatedAt); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, " | ")
}

// excerpt truncates the original message for single-line display.
func excerpt(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) <= maxExcerptLen {
		return msg
	}
	return msg[:maxExcerptLen-1] + "…"
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
