package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeEdit   Type = "edit"
	TypeRemove Type = "rm"
	TypeTheme  Type = "theme"
)

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

// AddArgs carries the raw title and description; the store trims and
// validates them.
type AddArgs struct {
	Title       string
	Description string
}

// TargetArgs addresses a task by its 1-based position in the list.
type TargetArgs struct {
	Position int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
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

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeDone, TypeEdit, TypeRemove:
		return parseTarget(input, Type(head), rest)
	case "delete":
		return parseTarget(input, TypeRemove, rest)
	case TypeTheme:
		if rest != "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes no arguments"}
		}
		return Command{Type: TypeTheme, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd splits "title | description" on the first pipe. Either side may
// be blank but not both.
func parseAdd(raw, rest string) (Command, error) {
	title, desc, _ := strings.Cut(rest, "|")
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" && desc == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title or description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Description: desc}}, nil
}

func parseTarget(raw string, t Type, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", t)}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "#"))
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", fields[0])}
	}
	return Command{Type: t, Raw: raw, Target: &TargetArgs{Position: n}}, nil
}
