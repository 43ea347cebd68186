package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Spin runs action behind a spinner on stderr. With show false the action
// runs directly, which keeps piped output and tests free of escape codes.
func Spin(ctx context.Context, title string, show bool, action func(context.Context) error) error {
	if !show {
		return action(ctx)
	}

	err := spinner.New().
		Title(title).
		Context(ctx).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
