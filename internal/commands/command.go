package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeGoal     Type = "goal"
	TypeSettings Type = "settings"
	TypeTask     Type = "task"
	TypeDone     Type = "done"
	TypeDistract Type = "distract"
	TypeTag      Type = "tag"
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

type GoalArgs struct {
	Target int
}

type SettingsArgs struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

type TaskArgs struct {
	Title string
}

type DoneArgs struct {
	Index int
}

type DistractArgs struct {
	Reason string
}

type TagArgs struct {
	Label string
}

type Command struct {
	Type     Type
	Raw      string
	Goal     *GoalArgs
	Settings *SettingsArgs
	Task     *TaskArgs
	Done     *DoneArgs
	Distract *DistractArgs
	Tag      *TagArgs
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
	case TypeGoal:
		return parseGoal(input, args)
	case TypeSettings:
		return parseSettings(input, args)
	case TypeTask:
		return parseTask(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDistract:
		return parseDistract(input, args)
	case TypeTag:
		return parseTag(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a single target count"}
	}
	target, err := strconv.Atoi(args[0])
	if err != nil || target < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("goal target must be a positive number, got %q", args[0])}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Target: target}}, nil
}

func parseSettings(raw string, args []string) (Command, error) {
	if len(args) != 4 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "settings requires focus, short break, long break, and interval"}
	}
	values := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("settings values must be positive numbers, got %q", arg)}
		}
		values[i] = v
	}
	return Command{Type: TypeSettings, Raw: raw, Settings: &SettingsArgs{
		FocusMinutes:      values[0],
		ShortBreakMinutes: values[1],
		LongBreakMinutes:  values[2],
		LongBreakInterval: values[3],
	}}, nil
}

func parseTask(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires a title"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Title: title}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task number"}
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("task number must be positive, got %q", args[0])}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Index: index}}, nil
}

func parseDistract(raw string, args []string) (Command, error) {
	reason := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeDistract, Raw: raw, Distract: &DistractArgs{Reason: reason}}, nil
}

func parseTag(raw string, args []string) (Command, error) {
	label := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeTag, Raw: raw, Tag: &TagArgs{Label: label}}, nil
}
