package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/kilupskalvis/gitgud/internal/core"
	"github.com/kilupskalvis/gitgud/internal/models"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	warnPanelStyle = panelStyle.BorderForeground(lipgloss.Color("#F7B801"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))

	healthStyles = map[core.Health]lipgloss.Style{
		core.HealthDivergent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		core.HealthNeedsSync:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")),
		core.HealthUncommitted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")),
		core.HealthClean:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
	}

	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// renderStatus draws the status dashboard
func renderStatus(w io.Writer, s *models.RepositoryStatus, a core.Assessment) {
	tracking := s.Tracking
	if tracking == "" {
		tracking = "(none)"
	}

	rows := []string{
		titleStyle.Render("Repository status"),
		"",
		row("Branch", s.Branch),
		row("Tracking", tracking),
		row("Ahead", fmt.Sprintf("%d", s.Ahead)),
		row("Behind", fmt.Sprintf("%d", s.Behind)),
		row("Modified", fmt.Sprintf("%d", s.Modified)),
		row("Untracked", fmt.Sprintf("%d", s.Created)),
		row("Deleted", fmt.Sprintf("%d", s.Deleted)),
	}
	for _, f := range s.Conflicted {
		rows = append(rows, row("Conflict", f))
	}
	rows = append(rows, "", row("Health", healthStyles[a.Health].Render(string(a.Health))))

	fmt.Fprintln(w, panelStyle.Render(strings.Join(rows, "\n")))
	for _, tip := range a.Tips {
		cyan.Fprintf(w, "  > %s\n", tip)
	}
}

// renderRecommendation draws a recommendation and the commands it would run
func renderRecommendation(w io.Writer, rec *models.Recommendation) {
	rows := []string{
		titleStyle.Render("Recommendation"),
		"",
		row("Strategy", string(rec.Strategy)),
		row("Confidence", fmt.Sprintf("%d%%", rec.Confidence)),
		row("Source", rec.Provider),
		"",
		rec.Reasoning,
	}

	if len(rec.Commands) > 0 {
		rows = append(rows, "", labelStyle.Render("Commands:"))
		for i, c := range rec.Commands {
			rows = append(rows, fmt.Sprintf("  %d. %s", i+1, displayCommand(c)))
		}
	}
	if len(rec.Risks) > 0 {
		rows = append(rows, "", labelStyle.Render("Risks:"))
		for _, r := range rec.Risks {
			rows = append(rows, "  - "+r)
		}
	}

	style := panelStyle
	if rec.RequiresManualReview {
		style = warnPanelStyle
	}
	fmt.Fprintln(w, style.Render(strings.Join(rows, "\n")))
}

// renderMessage draws a generated commit message
func renderMessage(w io.Writer, msg string) {
	fmt.Fprintln(w, panelStyle.Render(titleStyle.Render("Commit message")+"\n\n"+msg))
}

// stepPrinter reports each executed plan step
func stepPrinter(w io.Writer) core.StepObserver {
	return func(i int, command string, ok bool) {
		if ok {
			green.Fprint(w, "[OK]   ")
		} else {
			red.Fprint(w, "[FAIL] ")
		}
		fmt.Fprintln(w, displayCommand(command))
	}
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-11s", label)) + value
}

func displayCommand(c string) string {
	if strings.HasPrefix(c, "git ") {
		return c
	}
	return "git " + c
}
