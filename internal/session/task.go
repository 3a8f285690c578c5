package session

import (
	"errors"
	"strings"

	"github.com/nibzard/daycal/internal/datenav"
	"github.com/nibzard/daycal/internal/render"
	"github.com/nibzard/daycal/internal/taskstore"
)

// TaskState is a state of the per-day task session.
type TaskState int

const (
	TaskViewing TaskState = iota
	TaskAwaitingText
	TaskChoosingDelete
	TaskChoosingToggle
	TaskExited
)

func (s TaskState) String() string {
	switch s {
	case TaskViewing:
		return "viewing"
	case TaskAwaitingText:
		return "awaiting-text"
	case TaskChoosingDelete:
		return "choosing-delete"
	case TaskChoosingToggle:
		return "choosing-toggle"
	case TaskExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Outcome tells the caller what to do after a task session handled input.
type Outcome int

const (
	// OutcomeStay keeps the task session in control.
	OutcomeStay Outcome = iota
	// OutcomeBack returns control to the calendar.
	OutcomeBack
	// OutcomeQuit ends the program.
	OutcomeQuit
)

// TaskSession manages the checklist of a single day.
type TaskSession struct {
	store Store
	date  datenav.Date
	state TaskState
}

// NewTaskSession starts a session for date in the viewing state.
func NewTaskSession(store Store, date datenav.Date) *TaskSession {
	return &TaskSession{store: store, date: date, state: TaskViewing}
}

// Date returns the day being managed.
func (s *TaskSession) Date() datenav.Date {
	return s.date
}

// State returns the current state.
func (s *TaskSession) State() TaskState {
	return s.state
}

// Handle applies one line of input. Storage errors are returned unchanged
// and leave the state as it was.
func (s *TaskSession) Handle(line string) (Outcome, error) {
	switch s.state {
	case TaskViewing:
		return s.handleViewing(ParseDayCommand(line))
	case TaskAwaitingText:
		return s.handleText(line)
	case TaskChoosingDelete, TaskChoosingToggle:
		return s.handleChoice(ParseChoiceCommand(line))
	case TaskExited:
		return OutcomeQuit, nil
	}
	return OutcomeStay, nil
}

func (s *TaskSession) handleViewing(cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case CmdCreate:
		s.state = TaskAwaitingText
	case CmdDelete, CmdToggle:
		tasks, err := s.store.TasksForDay(s.date)
		if err != nil {
			return OutcomeStay, err
		}
		if len(tasks) == 0 {
			return OutcomeStay, nil
		}
		if cmd.Kind == CmdDelete {
			s.state = TaskChoosingDelete
		} else {
			s.state = TaskChoosingToggle
		}
	case CmdBack:
		return OutcomeBack, nil
	case CmdQuit:
		s.state = TaskExited
		return OutcomeQuit, nil
	case CmdUnknown, CmdNext, CmdPrevious, CmdCurrent, CmdNumber:
		// Not meaningful here.
	}
	return OutcomeStay, nil
}

func (s *TaskSession) handleText(line string) (Outcome, error) {
	s.state = TaskViewing
	if strings.TrimSpace(line) == "" {
		return OutcomeStay, nil
	}
	err := s.store.AddTask(s.date, line)
	if err != nil && !errors.Is(err, taskstore.ErrEmptyDescription) {
		s.state = TaskAwaitingText
		return OutcomeStay, err
	}
	return OutcomeStay, nil
}

func (s *TaskSession) handleChoice(cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case CmdBack:
		s.state = TaskViewing
	case CmdQuit:
		s.state = TaskExited
		return OutcomeQuit, nil
	case CmdNumber:
		return OutcomeStay, s.applyChoice(cmd.N - 1)
	case CmdUnknown, CmdNext, CmdPrevious, CmdCurrent, CmdCreate, CmdDelete, CmdToggle:
		// Re-render the same choice.
	}
	return OutcomeStay, nil
}

func (s *TaskSession) applyChoice(index int) error {
	tasks, err := s.store.TasksForDay(s.date)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tasks) {
		return nil
	}

	if s.state == TaskChoosingToggle {
		// Toggling stays in this state so several tasks can be flipped.
		return s.store.ToggleStatus(s.date, index)
	}

	if err := s.store.DeleteTask(s.date, index); err != nil {
		return err
	}
	remaining, err := s.store.TasksForDay(s.date)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		s.state = TaskViewing
	}
	return nil
}

// Screen describes what to draw for the current state.
func (s *TaskSession) Screen() (render.Screen, error) {
	if s.state == TaskAwaitingText {
		return render.PromptScreen{Date: s.date}, nil
	}

	tasks, err := s.store.TasksForDay(s.date)
	if err != nil {
		return nil, err
	}
	mode := render.DayModeView
	switch s.state {
	case TaskChoosingDelete:
		mode = render.DayModeDelete
	case TaskChoosingToggle:
		mode = render.DayModeToggle
	}
	return render.DayScreen{Date: s.date, Tasks: tasks, Mode: mode}, nil
}
