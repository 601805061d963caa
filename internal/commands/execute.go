package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add  func(AddArgs) (Result, error)
	Edit func(EditArgs) (Result, error)
	Done func(DoneArgs) (Result, error)
	View func(ViewArgs) (Result, error)
	Save func(FileArgs) (Result, error)
	Load func(FileArgs) (Result, error)
	Quit func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missingHandler("edit")
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missingHandler("done")
		}
		return handlers.Done(*cmd.Done)
	case TypeView:
		if handlers.View == nil {
			return Result{}, missingHandler("view")
		}
		return handlers.View(*cmd.View)
	case TypeSave:
		if handlers.Save == nil {
			return Result{}, missingHandler("save")
		}
		return handlers.Save(*cmd.Save)
	case TypeLoad:
		if handlers.Load == nil {
			return Result{}, missingHandler("load")
		}
		return handlers.Load(*cmd.Load)
	case TypeQuit:
		if handlers.Quit == nil {
			return Result{}, missingHandler("quit")
		}
		return handlers.Quit()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", name)}
}
