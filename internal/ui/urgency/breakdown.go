// Package urgency renders the backend's explainable urgency scoring into
// terminal output. It is a pure formatting layer: no network calls, no
// mutable state, and no influence on the authoritative score.
package urgency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/theme"
)

// Tier classifies a 0-10 sub-score into the four display tiers used for
// visual emphasis. This duplicates the backend's urgency_level tiers on
// purpose; the two classifications are independently sourced and may
// disagree without it being an error.
func Tier(score float64) string {
	switch {
	case score >= 8:
		return model.UrgencyCritical
	case score >= 6:
		return model.UrgencyHigh
	case score >= 4:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

// TotalWeighted sums the backend-supplied weighted scores of all factors.
// The result is shown next to the backend's rounded urgency_score as a
// human-auditable cross-check; it never replaces that score and the two
// are not reconciled.
func TotalWeighted(factors map[string]model.Factor) float64 {
	var total float64
	for _, f := range factors {
		total += f.WeightedScore
	}
	return total
}

// FactorName turns a factor key like "life_risk" into a display name.
func FactorName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// sortedFactorKeys returns the factor keys in a stable display order.
func sortedFactorKeys(factors map[string]model.Factor) []string {
	keys := make([]string, 0, len(factors))
	for k := range factors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render formats the full urgency analysis for a viewport of the given
// width. Returns "" when no breakdown is attached to the data.
func Render(data *model.UrgencyData, width int) string {
	if data == nil {
		return ""
	}

	if width < 40 {
		width = 40
	}

	level := data.UrgencyLevel
	levelColor := theme.UrgencyColor(level)

	var sections []string
	sections = append(sections, renderOverall(data, levelColor))

	// A response without the full breakdown still shows the overall panel.
	b := data.Breakdown
	if b == nil {
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if b.Recommendation != nil {
		sections = append(sections, renderRecommendation(b.Recommendation, levelColor))
	}

	if len(b.Factors) > 0 {
		sections = append(sections, renderFactors(b.Factors, width))
	}

	if len(b.Reasoning) > 0 {
		sections = append(sections, renderReasoning(b.Reasoning))
	}

	if len(b.Factors) > 0 {
		sections = append(sections, renderVerification(data, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOverall shows the final score, level, and the backend's summary
// reasoning.
func renderOverall(data *model.UrgencyData, levelColor lipgloss.AdaptiveColor) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor)

	lines := []string{
		titleStyle.Render("Urgency Analysis"),
		fmt.Sprintf(
			"%s  %s",
			levelStyle.Render(fmt.Sprintf("%g/10", data.UrgencyScore)),
			levelStyle.Render(strings.ToUpper(data.UrgencyLevel)+" PRIORITY"),
		),
	}
	if data.UrgencyReasoning != "" {
		lines = append(lines, data.UrgencyReasoning)
	}

	return strings.Join(lines, "\n") + "\n"
}

// renderRecommendation shows the backend's suggested dispatch action.
func renderRecommendation(rec *model.Recommendation, levelColor lipgloss.AdaptiveColor) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	actionStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor)

	lines := []string{
		headStyle.Render("Recommended Action"),
		fmt.Sprintf("%s  %s", labelStyle.Render("Action:"), actionStyle.Render(rec.Action)),
		fmt.Sprintf("%s %s", labelStyle.Render("Timeline:"), rec.Timeline),
		fmt.Sprintf("%s %s", labelStyle.Render("Priority:"), rec.Priority),
	}

	return strings.Join(lines, "\n") + "\n"
}

// renderFactors shows one card per factor: weight, score bar, contribution,
// reasoning, and detected indicators.
func renderFactors(factors map[string]model.Factor, width int) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	nameStyle := lipgloss.NewStyle().Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	sections := []string{headStyle.Render("Factor Analysis")}

	for _, key := range sortedFactorKeys(factors) {
		f := factors[key]
		scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ScoreColor(f.Score))

		card := []string{
			fmt.Sprintf(
				"%s  %s",
				nameStyle.Render(FactorName(key)),
				metaStyle.Render(fmt.Sprintf("weight %.0f%%", f.Weight*100)),
			),
			fmt.Sprintf(
				"%s %s",
				scoreBar(f.Score, width),
				scoreStyle.Render(fmt.Sprintf("%.1f/10", f.Score)),
			),
			metaStyle.Render(fmt.Sprintf("contribution +%.2f points", f.WeightedScore)),
		}
		if f.Reasoning != "" {
			card = append(card, f.Reasoning)
		}
		if len(f.Indicators) > 0 {
			card = append(card, metaStyle.Render(
				"indicators: "+strings.Join(f.Indicators, ", "),
			))
		}
		sections = append(sections, strings.Join(card, "\n"))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// scoreBar draws a proportional bar for a 0-10 score.
func scoreBar(score float64, width int) string {
	barWidth := width / 3
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(score / 10 * float64(barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}

	fillStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(score))
	emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)

	return fillStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// renderReasoning shows the step-by-step narrative timeline.
func renderReasoning(steps []model.ReasoningStep) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	factorStyle := lipgloss.NewStyle().Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	sections := []string{headStyle.Render("Why This Score")}

	for i, step := range steps {
		impactStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.UrgencyColor(strings.ToLower(step.Impact)))

		lines := []string{
			fmt.Sprintf(
				"%d. %s  %s",
				i+1,
				factorStyle.Render(step.Factor),
				impactStyle.Render(strings.ToUpper(step.Impact)+" IMPACT"),
			),
			"   " + step.Explanation,
		}
		if len(step.Indicators) > 0 {
			lines = append(lines, "   "+metaStyle.Render(
				"evidence: "+strings.Join(step.Indicators, ", "),
			))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n") + "\n"
}

// renderVerification shows the calculation table: every factor's score,
// weight, and contribution, the locally summed total, and the backend's
// rounded final score. The two totals come from independent sources and
// are deliberately shown side by side without reconciliation.
func renderVerification(data *model.UrgencyData, width int) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	finalStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.UrgencyColor(data.UrgencyLevel))

	factors := data.Breakdown.Factors
	nameWidth := len("Factor")
	for key := range factors {
		if n := len(FactorName(key)); n > nameWidth {
			nameWidth = n
		}
	}

	sep := sepStyle.Render(strings.Repeat("─", min(width-4, nameWidth+34)))

	rows := []string{
		headStyle.Render("Score Calculation Verification"),
		fmt.Sprintf("%-*s  %8s  %7s  %13s", nameWidth, "Factor", "Score", "Weight", "Contribution"),
		sep,
	}

	for _, key := range sortedFactorKeys(factors) {
		f := factors[key]
		rows = append(rows, fmt.Sprintf(
			"%-*s  %5.2f/10  %6.0f%%  %+13.2f",
			nameWidth, FactorName(key), f.Score, f.Weight*100, f.WeightedScore,
		))
	}

	rows = append(rows,
		sep,
		fmt.Sprintf(
			"%-*s  %31.2f",
			nameWidth, "Total weighted score", TotalWeighted(factors),
		),
		fmt.Sprintf(
			"%-*s  %31s",
			nameWidth, "Final score (rounded)",
			finalStyle.Render(fmt.Sprintf("%g/10", data.UrgencyScore)),
		),
	)

	return strings.Join(rows, "\n") + "\n"
}
