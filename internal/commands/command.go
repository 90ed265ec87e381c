package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/duedate/internal/model"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDue  Type = "due"
	TypeHide Type = "hide"
	TypeDone Type = "done"
	TypeShow Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ShowSubject string

const (
	ShowAll     ShowSubject = "all"
	ShowOverdue ShowSubject = "overdue"
	ShowDue     ShowSubject = "due"
)

type AddArgs struct {
	Title string
}

// Clock is the wall-clock part of a specific date given on the command line,
// interpreted later in the calculator's timezone.
type Clock struct {
	Date    string
	Time    string
	HasTime bool
}

type DueArgs struct {
	Target  string
	Urgency model.Urgency
	When    Clock
}

type HideArgs struct {
	Target  string
	Setting model.HideUntil
	When    Clock
}

type DoneArgs struct {
	Target string
}

type ShowArgs struct {
	Subject ShowSubject
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Due  *DueArgs
	Hide *HideArgs
	Done *DoneArgs
	Show *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeHide:
		return parseHide(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires target and urgency"}
	}
	urgency, err := model.ParseUrgency(args[1])
	if err != nil {
		return Command{}, invalidArgument(err)
	}
	when, err := parseClock(args[2:], urgency.IsSpecific(), urgency == model.UrgencySpecificDayAndTime)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Target: args[0], Urgency: urgency, When: when}}, nil
}

func parseHide(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "hide requires target and setting"}
	}
	setting, err := model.ParseHideUntil(args[1])
	if err != nil {
		return Command{}, invalidArgument(err)
	}
	when, err := parseClock(args[2:], setting.IsSpecific(), setting == model.HideUntilSpecificDayAndTime)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeHide, Raw: raw, Hide: &HideArgs{Target: args[0], Setting: setting, When: when}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires exactly one target"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	subject := ShowAll
	if len(args) > 0 {
		subject = ShowSubject(strings.ToLower(args[0]))
	}
	switch subject {
	case ShowAll, ShowOverdue, ShowDue:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown show subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseClock(args []string, needDate, needTime bool) (Clock, error) {
	if !needDate {
		if len(args) > 0 {
			return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "unexpected date for relative setting"}
		}
		return Clock{}, nil
	}
	if len(args) == 0 {
		return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "a date (YYYY-MM-DD) is required"}
	}
	if len(args) > 2 {
		return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "too many arguments after date"}
	}
	out := Clock{Date: args[0]}
	if _, err := time.Parse(DateLayout, out.Date); err != nil {
		return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date %q", out.Date)}
	}
	if len(args) == 2 {
		out.Time = args[1]
		out.HasTime = true
		if _, err := time.Parse(TimeLayout, out.Time); err != nil {
			return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time %q", out.Time)}
		}
	}
	if needTime && !out.HasTime {
		return Clock{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "a time (HH:MM) is required"}
	}
	return out, nil
}

// In resolves the clock to epoch milliseconds in loc. A missing time means noon.
func (c Clock) In(loc *time.Location) (int64, error) {
	if c.Date == "" {
		return 0, nil
	}
	layout, value := DateLayout+" "+TimeLayout, c.Date+" 12:00"
	if c.HasTime {
		value = c.Date + " " + c.Time
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func invalidArgument(err error) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: strings.TrimPrefix(err.Error(), "model: ")}
}
