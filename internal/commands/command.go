package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/weekplan/internal/model"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeEdit Type = "edit"
	TypeDone Type = "done"
	TypeView Type = "view"
	TypeSave Type = "save"
	TypeLoad Type = "load"
	TypeQuit Type = "quit"
)

// DefaultFilename is used by save and load when no filename is given and
// no other default is configured.
const DefaultFilename = "tasks.json"

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Day  string
	Name string
}

type EditArgs struct {
	Day   string
	Index int
	Name  string
}

type DoneArgs struct {
	Day   string
	Index int
}

// ViewArgs with a blank Day means view every day.
type ViewArgs struct {
	Day string
}

// FileArgs with a blank Filename means the caller's configured default.
type FileArgs struct {
	Filename string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Edit *EditArgs
	Done *DoneArgs
	View *ViewArgs
	Save *FileArgs
	Load *FileArgs
}

// Parse reads a single command line. Day arguments must be one of the
// eight day tokens (case-insensitive); add and view treat a missing day as
// blank, which downstream means general and view-all respectively.
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
		return parseAdd(input, args), nil
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeView:
		return parseView(input, args)
	case TypeSave:
		return Command{Type: TypeSave, Raw: input, Save: parseFile(args)}, nil
	case TypeLoad:
		return Command{Type: TypeLoad, Raw: input, Load: parseFile(args)}, nil
	case TypeQuit:
		return Command{Type: TypeQuit, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) Command {
	day := ""
	if len(args) > 0 && isDayToken(args[0]) {
		day = strings.ToLower(args[0])
		args = args[1:]
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Day: day, Name: name}}
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a day and a task index"}
	}
	day, err := requireDay(args[0])
	if err != nil {
		return Command{}, err
	}
	index, err := requireIndex(args[1])
	if err != nil {
		return Command{}, err
	}
	name := strings.TrimSpace(strings.Join(args[2:], " "))
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Day: day, Index: index, Name: name}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a day and a task index"}
	}
	day, err := requireDay(args[0])
	if err != nil {
		return Command{}, err
	}
	index, err := requireIndex(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Day: day, Index: index}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeView, Raw: raw, View: &ViewArgs{}}, nil
	}
	day, err := requireDay(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeView, Raw: raw, View: &ViewArgs{Day: day}}, nil
}

func parseFile(args []string) *FileArgs {
	filename := ""
	if len(args) > 0 {
		filename = strings.TrimSpace(args[0])
	}
	return &FileArgs{Filename: filename}
}

func isDayToken(raw string) bool {
	return model.Day(strings.ToLower(strings.TrimSpace(raw))).IsCanonical()
}

func requireDay(raw string) (string, error) {
	if !isDayToken(raw) {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown day: %s", raw)}
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}

func requireIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("task index must be a non-negative number, got %s", raw)}
	}
	return index, nil
}
