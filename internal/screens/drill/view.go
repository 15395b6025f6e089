package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	core "github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const panelWidth = 30

func (s *DrillScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return layout.Center(theme.Hint.Render("\n\nPreparing words..."), width)
	case phaseError:
		return renderError(width, s.errMsg)
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	}

	mainWidth := width
	showPanel := s.showQueue && !layout.IsCompactWidth(width)
	if showPanel {
		mainWidth = width - panelWidth - 2
	}

	body := s.renderQuestion(mainWidth)
	if s.showQueue && !showPanel {
		return body + "\n" + s.renderQueuePanel(width-4)
	}
	if !showPanel {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", s.renderQueuePanel(panelWidth))
}

func (s *DrillScreen) renderQuestion(width int) string {
	q := s.question
	if q == nil {
		return ""
	}

	var b strings.Builder

	snap := s.engine.Snapshot()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Type.Label())
	infoRight := theme.Dimmed.Render(fmt.Sprintf("word %d/%d   %s %d   %s %d",
		snap.Introduced, snap.PoolSize,
		theme.Correct.Render("✓"), snap.Correct,
		theme.Incorrect.Render("✗"), snap.Wrong,
	))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n\n")

	prompt := theme.Prompt.Render(q.Prompt())
	if q.Type == core.Fill {
		prompt = theme.Template.Render(spaced(q.Template))
	}
	b.WriteString(layout.Center(prompt, width))
	b.WriteString("\n")
	if hint := q.Hint(); hint != "" {
		b.WriteString(layout.Center(theme.Hint.Render(hint), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Type.IsChoice() {
		b.WriteString(indentBlock(s.choice.View(), width))
	} else {
		b.WriteString(layout.Center(s.input.View(), width))
		b.WriteString("\n")
	}

	if s.phase == phaseFeedback && s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	if s.tip != nil && s.tip.Term == q.Word.Term {
		b.WriteString("\n")
		b.WriteString(layout.Center(renderTip(s.tip.Mnemonic, s.tip.Example, min(width-4, 64)), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	bar := components.NewProgressBar("Today", s.goal.Completed(), s.goal.Plan(), min(width-4, 48))
	b.WriteString(layout.Center(bar.View(), width))
	if s.goal.AwaitingRetry(s.engine.RetryPending()) {
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Hint.Render("clear the retry words to finish today's goal"), width))
	}
	return b.String()
}

func (s *DrillScreen) renderFeedback(width int) string {
	res := s.result
	var lines []string

	if res.Correct {
		lines = append(lines, theme.Correct.Render("✓ Correct!"))
	} else {
		lines = append(lines, theme.Incorrect.Render("✗ Not quite. ")+
			theme.Body.Render("Answer: ")+theme.Prompt.Render(res.Expected))
		if res.Question.Type == core.Fill {
			lines = append(lines, theme.Hint.Render("The word is "+res.Question.Word.Term))
		}
	}
	if res.NewlyMastered {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("★ %s mastered!", res.Question.Word.Term)))
	}
	if s.goalJustHit {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Daily goal of %d words reached! Bonus points from here on.", s.goal.Plan())))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Center(l, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderQueuePanel lists what the scheduler will serve next.
func (s *DrillScreen) renderQueuePanel(width int) string {
	snap := s.engine.Snapshot()
	var b strings.Builder

	b.WriteString(theme.Selected.Render("Current"))
	b.WriteString("\n")
	if snap.CurrentWord != nil {
		b.WriteString(theme.Body.Render(snap.CurrentWord.Term))
		if len(snap.PendingTypes) > 0 {
			b.WriteString(theme.Dimmed.Render("  +" + fmt.Sprint(len(snap.PendingTypes))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Selected.Render(fmt.Sprintf("Retry (%d)", len(snap.Retry))))
	b.WriteString("\n")
	if len(snap.Retry) == 0 {
		b.WriteString(theme.Dimmed.Render("empty"))
		b.WriteString("\n")
	}
	for _, e := range snap.Retry {
		b.WriteString(theme.Incorrect.Render(e.Word.Term))
		b.WriteString(theme.Dimmed.Render("  " + typeList(e.FailedTypes)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Selected.Render(fmt.Sprintf("Up next (%d)", len(snap.MainQueue))))
	b.WriteString("\n")
	const shown = 5
	for i, w := range snap.MainQueue {
		if i == shown {
			b.WriteString(theme.Dimmed.Render(fmt.Sprintf("… %d more", len(snap.MainQueue)-shown)))
			b.WriteString("\n")
			break
		}
		b.WriteString(theme.Body.Render(w.Term))
		b.WriteString("\n")
	}

	return theme.Panel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func typeList(types []core.QuestionType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

func renderTip(mnemonic, example string, width int) string {
	body := theme.Body.Render(mnemonic)
	if example != "" {
		body += "\n" + theme.Hint.Render("e.g. "+example)
	}
	return theme.TipCard.Width(max(width, 20)).Render(body)
}

// spaced puts a space between runes so blanks in a Fill template can be
// counted.
func spaced(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func indentBlock(block string, width int) string {
	w := lipgloss.Width(block)
	pad := max((width-w)/2, 2)
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderError(width int, msg string) string {
	return layout.Center(
		theme.Incorrect.Render("Cannot start the drill")+"\n\n"+theme.Body.Render(msg)+"\n\n"+
			theme.Hint.Render("Press Esc to go back"),
		width,
	)
}

func renderQuitConfirm(width int) string {
	return "\n\n" + layout.Center(
		theme.Prompt.Render("End this session?")+"\n\n"+
			theme.Hint.Render("Progress on words you already mastered is kept."),
		width,
	)
}
