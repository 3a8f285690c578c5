package session

import (
	"strconv"
	"strings"
)

// CommandKind identifies a parsed command.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdNext
	CmdPrevious
	CmdCurrent
	CmdQuit
	CmdBack
	CmdCreate
	CmdDelete
	CmdToggle
	// CmdNumber carries a day number or a 1-based task number in N.
	CmdNumber
)

var commandNames = map[CommandKind]string{
	CmdUnknown:  "unknown",
	CmdNext:     "next",
	CmdPrevious: "previous",
	CmdCurrent:  "current",
	CmdQuit:     "quit",
	CmdBack:     "back",
	CmdCreate:   "create",
	CmdDelete:   "delete",
	CmdToggle:   "toggle",
	CmdNumber:   "number",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "CommandKind(" + strconv.Itoa(int(k)) + ")"
}

// Command is one line of user input, classified.
type Command struct {
	Kind CommandKind
	N    int
}

var (
	calendarKeys = map[string]CommandKind{
		"n": CmdNext,
		"p": CmdPrevious,
		"c": CmdCurrent,
		"q": CmdQuit,
	}
	dayKeys = map[string]CommandKind{
		"c": CmdCreate,
		"d": CmdDelete,
		"t": CmdToggle,
		"b": CmdBack,
		"q": CmdQuit,
	}
	choiceKeys = map[string]CommandKind{
		"b": CmdBack,
		"q": CmdQuit,
	}
)

// ParseCalendarCommand classifies input typed at the month view.
func ParseCalendarCommand(line string) Command {
	return parse(line, calendarKeys, true)
}

// ParseDayCommand classifies input typed at a day's task list.
func ParseDayCommand(line string) Command {
	return parse(line, dayKeys, false)
}

// ParseChoiceCommand classifies input typed while picking a task number.
func ParseChoiceCommand(line string) Command {
	return parse(line, choiceKeys, true)
}

// parse trims and lower-cases line before matching it against keys.
// All-digit input becomes CmdNumber when numbers are accepted; values too
// large for an int are unknown.
func parse(line string, keys map[string]CommandKind, numbers bool) Command {
	s := strings.ToLower(strings.TrimSpace(line))
	if kind, ok := keys[s]; ok {
		return Command{Kind: kind}
	}
	if numbers && s != "" && isDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdNumber, N: n}
	}
	return Command{Kind: CmdUnknown}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
