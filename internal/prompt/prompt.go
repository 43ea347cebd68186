// Package prompt asks the user questions.
//
// Workflows depend on the Prompter interface; the huh-backed implementation
// is used on the command line and Scripted replays fixed answers.
package prompt

import (
	"context"
	"errors"
)

var (
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("aborted by user")

	// ErrNoOptions is returned by Choose when there is nothing to choose from.
	ErrNoOptions = errors.New("no options to choose from")
)

// Prompter asks single questions.
type Prompter interface {
	// Choose returns one of options. def is preselected when present.
	Choose(ctx context.Context, title string, options []string, def string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string, def bool) (bool, error)

	// Input asks for free text. validate may be nil.
	Input(ctx context.Context, title string, validate func(string) error) (string, error)
}
