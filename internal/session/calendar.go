// Package session implements the calendar and per-day task state machines.
//
// Both machines consume one line of input at a time and know nothing about
// terminals: a front end feeds lines to CalendarSession.Handle and draws
// whatever CalendarSession.Screen describes.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/daycal/internal/datenav"
	"github.com/nibzard/daycal/internal/render"
	"github.com/nibzard/daycal/internal/taskstore"
)

// Store is the task storage the sessions operate on.
type Store interface {
	TasksForDay(date datenav.Date) ([]taskstore.Task, error)
	AddTask(date datenav.Date, description string) error
	ToggleStatus(date datenav.Date, index int) error
	DeleteTask(date datenav.Date, index int) error
	MonthProgress(year int, month time.Month) (map[int]taskstore.Progress, error)
}

// CalendarState is a state of the top-level calendar session.
type CalendarState int

const (
	CalendarViewingMonth CalendarState = iota
	CalendarExited
)

// CalendarSession is the top-level month browser. While a day is open,
// input is forwarded to that day's TaskSession.
type CalendarSession struct {
	store   Store
	clock   datenav.Clock
	logger  *log.Logger
	focused time.Time
	day     *TaskSession
	state   CalendarState
}

// CalendarOption configures a CalendarSession.
type CalendarOption func(*CalendarSession)

// WithLogger sets the logger for navigation events.
func WithLogger(logger *log.Logger) CalendarOption {
	return func(c *CalendarSession) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFocusedMonth starts the session on the month containing t instead of
// the clock's current month.
func WithFocusedMonth(t time.Time) CalendarOption {
	return func(c *CalendarSession) {
		c.focused = datenav.FirstOfMonth(t)
	}
}

// NewCalendarSession starts on the clock's current month.
func NewCalendarSession(store Store, clock datenav.Clock, opts ...CalendarOption) *CalendarSession {
	c := &CalendarSession{
		store:   store,
		clock:   clock,
		logger:  log.New(io.Discard),
		focused: datenav.CurrentMonth(clock),
		state:   CalendarViewingMonth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Focused returns the first day of the displayed month.
func (c *CalendarSession) Focused() time.Time {
	return c.focused
}

// Day returns the open task session, or nil while viewing the month.
func (c *CalendarSession) Day() *TaskSession {
	return c.day
}

// State returns the calendar state.
func (c *CalendarSession) State() CalendarState {
	return c.state
}

// Exited reports whether the user quit.
func (c *CalendarSession) Exited() bool {
	return c.state == CalendarExited
}

// Handle applies one line of input.
func (c *CalendarSession) Handle(line string) error {
	if c.state == CalendarExited {
		return nil
	}

	if c.day != nil {
		outcome, err := c.day.Handle(line)
		if err != nil {
			return err
		}
		switch outcome {
		case OutcomeBack:
			c.logger.Debug("closed day", "date", c.day.Date())
			c.day = nil
		case OutcomeQuit:
			c.day = nil
			c.state = CalendarExited
		case OutcomeStay:
		}
		return nil
	}

	cmd := ParseCalendarCommand(line)
	switch cmd.Kind {
	case CmdNext:
		c.focus(datenav.NextMonth(c.focused))
	case CmdPrevious:
		c.focus(datenav.PreviousMonth(c.focused))
	case CmdCurrent:
		if !c.onCurrentMonth() {
			c.focus(datenav.CurrentMonth(c.clock))
		}
	case CmdQuit:
		c.state = CalendarExited
	case CmdNumber:
		date := datenav.NewDate(c.focused.Year(), c.focused.Month(), cmd.N)
		if date.Valid() {
			c.logger.Debug("opened day", "date", date)
			c.day = NewTaskSession(c.store, date)
		}
	case CmdUnknown, CmdBack, CmdCreate, CmdDelete, CmdToggle:
		// Ignored at the month view.
	}
	return nil
}

func (c *CalendarSession) focus(month time.Time) {
	c.focused = month
	c.logger.Debug("focused month", "month", month.Format("2006-01"))
}

func (c *CalendarSession) onCurrentMonth() bool {
	return datenav.SameMonth(c.focused, datenav.CurrentMonth(c.clock))
}

// Screen describes what to draw next. It returns nil once the session has
// exited.
func (c *CalendarSession) Screen() (render.Screen, error) {
	if c.state == CalendarExited {
		return nil, nil
	}
	if c.day != nil {
		return c.day.Screen()
	}

	year, month := c.focused.Year(), c.focused.Month()
	progress, err := c.store.MonthProgress(year, month)
	if err != nil {
		return nil, err
	}
	today := datenav.Today(c.clock)
	todayTasks, err := c.store.TasksForDay(today)
	if err != nil {
		return nil, err
	}
	return render.MonthScreen{
		Year:        year,
		Month:       month,
		Today:       today,
		Progress:    progress,
		TodayTasks:  todayTasks,
		ShowCurrent: !c.onCurrentMonth(),
	}, nil
}
