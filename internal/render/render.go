// Package render turns session screens into terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/daycal/internal/datenav"
	"github.com/nibzard/daycal/internal/taskstore"
)

// Screen is one of MonthScreen, DayScreen, or PromptScreen.
type Screen interface {
	screen()
}

// MonthScreen is the calendar grid for one month.
type MonthScreen struct {
	Year  int
	Month time.Month
	Today datenav.Date
	// Progress holds the task summary of each day that has tasks.
	Progress   map[int]taskstore.Progress
	TodayTasks []taskstore.Task
	// ShowCurrent offers the jump-to-current-month command.
	ShowCurrent bool
}

// DayMode selects the command legend of a DayScreen.
type DayMode int

const (
	DayModeView DayMode = iota
	DayModeDelete
	DayModeToggle
)

// DayScreen lists the tasks of one day.
type DayScreen struct {
	Date  datenav.Date
	Tasks []taskstore.Task
	Mode  DayMode
}

// PromptScreen asks for the text of a new task.
type PromptScreen struct {
	Date datenav.Date
}

func (MonthScreen) screen()  {}
func (DayScreen) screen()    {}
func (PromptScreen) screen() {}

// Prompt returns the input prompt shown after a screen.
func Prompt(s Screen) string {
	if _, ok := s.(PromptScreen); ok {
		return " Enter task: "
	}
	return " "
}

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling.
	Color bool
}

// Renderer draws screens.
type Renderer struct {
	styles styles
}

type styles struct {
	today     lipgloss.Style
	pending   lipgloss.Style
	completed lipgloss.Style
	key       lipgloss.Style
	heading   lipgloss.Style
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if !opts.Color {
		plain := lipgloss.NewStyle()
		return &Renderer{styles: styles{plain, plain, plain, plain, plain}}
	}
	return &Renderer{styles: styles{
		today:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		pending:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		completed: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		key:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		heading:   lipgloss.NewStyle().Underline(true),
	}}
}

// Render draws s. A nil screen renders as an empty string.
func (r *Renderer) Render(s Screen) string {
	var b strings.Builder
	switch s := s.(type) {
	case MonthScreen:
		r.writeMonth(&b, s)
	case DayScreen:
		r.writeDay(&b, s)
	case PromptScreen:
		r.writePrompt(&b, s)
	}
	return b.String()
}

// gridWidth is seven 3-column day cells.
const gridWidth = 21

func (r *Renderer) writeMonth(b *strings.Builder, s MonthScreen) {
	lines := []string{
		fmt.Sprintf("    %s %d", s.Month, s.Year),
		" Mo Tu We Th Fr Sa Su",
	}
	for _, week := range datenav.MonthGrid(s.Year, s.Month) {
		var line strings.Builder
		for _, day := range week {
			line.WriteString(r.dayCell(s, day))
		}
		lines = append(lines, line.String())
	}

	key := []string{
		"",
		"",
		r.styles.today.Render("Blue") + " - Current Day",
		"White - Free Day",
		r.styles.completed.Render("Green") + " - Tasks Completed",
		r.styles.pending.Render("Red") + " - Tasks Pending",
	}

	b.WriteString("\n")
	for i, line := range lines {
		right := ""
		if i < len(key) {
			right = key[i]
		}
		b.WriteString(strings.TrimRight(padRight(line, gridWidth)+"      "+right, " "))
		b.WriteString("\n")
	}

	if len(s.TodayTasks) > 0 {
		b.WriteString("\n " + r.styles.heading.Render("Today") + ":\n")
		for _, task := range s.TodayTasks {
			mark := " "
			if task.Done() {
				mark = "x"
			}
			b.WriteString(fmt.Sprintf(" [%s] %s\n", mark, task.Description))
		}
	}

	days := datenav.DaysInMonth(s.Year, s.Month)
	legend := []string{
		r.key(fmt.Sprintf("1-%d", days)) + " Check Day",
		r.key("N") + " Next Month",
		r.key("P") + " Previous Month",
	}
	if s.ShowCurrent {
		legend = append(legend, r.key("C")+" Current Month")
	}
	legend = append(legend, r.key("Q")+" Quit")
	r.writeLegend(b, legend)
}

func (r *Renderer) dayCell(s MonthScreen, day int) string {
	if day == 0 {
		return "   "
	}
	text := fmt.Sprintf("%2d", day)
	switch {
	case s.Today == datenav.NewDate(s.Year, s.Month, day):
		text = r.styles.today.Render(text)
	case s.Progress[day] == taskstore.ProgressPending:
		text = r.styles.pending.Render(text)
	case s.Progress[day] == taskstore.ProgressCompleted:
		text = r.styles.completed.Render(text)
	}
	return " " + text
}

func (r *Renderer) writeDay(b *strings.Builder, s DayScreen) {
	r.writeDateHeading(b, s.Date)

	if len(s.Tasks) == 0 {
		b.WriteString(" No tasks for this day.\n")
		if s.Mode == DayModeView {
			r.writeLegend(b, []string{
				r.key("C") + " Create Task",
				r.key("B") + " Go Back",
				r.key("Q") + " Quit",
			})
			return
		}
		r.writeLegend(b, []string{r.key("B") + " Go Back", r.key("Q") + " Quit"})
		return
	}

	for i, task := range s.Tasks {
		style := r.styles.pending
		if task.Done() {
			style = r.styles.completed
		}
		status := "[" + style.Render(task.Status.Label()) + "]"
		b.WriteString(fmt.Sprintf(" %d. %s %s\n", i+1, padRight(status, len("[Completed]")), task.Description))
	}

	switch s.Mode {
	case DayModeView:
		r.writeLegend(b, []string{
			r.key("C") + " Create Task",
			r.key("D") + " Delete Task",
			r.key("T") + " Toggle Status",
			r.key("B") + " Go Back",
			r.key("Q") + " Quit",
		})
	case DayModeDelete, DayModeToggle:
		action := "Delete Task"
		if s.Mode == DayModeToggle {
			action = "Toggle Status"
		}
		choices := "1"
		if len(s.Tasks) > 1 {
			choices = fmt.Sprintf("1-%d", len(s.Tasks))
		}
		r.writeLegend(b, []string{
			r.key(choices) + " " + action,
			r.key("B") + " Go Back",
			r.key("Q") + " Quit",
		})
	}
}

func (r *Renderer) writePrompt(b *strings.Builder, s PromptScreen) {
	r.writeDateHeading(b, s.Date)
	b.WriteString(" New task for this day. Leave blank to cancel.\n\n")
}

func (r *Renderer) writeDateHeading(b *strings.Builder, d datenav.Date) {
	b.WriteString("\n " + r.styles.heading.Render(d.ISO()) + ":\n\n")
}

func (r *Renderer) writeLegend(b *strings.Builder, items []string) {
	b.WriteString("\n\n " + strings.Join(items, "  ") + "\n")
}

func (r *Renderer) key(label string) string {
	return "[" + r.styles.key.Render(label) + "]"
}

// padRight pads s with spaces to the given visible width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
