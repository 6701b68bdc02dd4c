package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goal     func(GoalArgs) (Result, error)
	Settings func(SettingsArgs) (Result, error)
	Task     func(TaskArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Distract func(DistractArgs) (Result, error)
	Tag      func(TagArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeSettings:
		if handlers.Settings == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "settings handler not configured"}
		}
		return handlers.Settings(*cmd.Settings)
	case TypeTask:
		if handlers.Task == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "task handler not configured"}
		}
		return handlers.Task(*cmd.Task)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDistract:
		if handlers.Distract == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "distract handler not configured"}
		}
		return handlers.Distract(*cmd.Distract)
	case TypeTag:
		if handlers.Tag == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "tag handler not configured"}
		}
		return handlers.Tag(*cmd.Tag)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
