package prompt

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// HuhOptions configures the interactive prompter.
type HuhOptions struct {
	Input      io.Reader
	Output     io.Writer
	Accessible bool
}

// Huh prompts through charmbracelet/huh forms.
type Huh struct {
	opts   HuhOptions
	keymap *huh.KeyMap
}

// NewHuh creates an interactive prompter.
func NewHuh(opts HuhOptions) *Huh {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	)

	return &Huh{opts: opts, keymap: km}
}

// Accessible reports whether prompts should use huh's line-based mode:
// when ACCESSIBLE is set or stdin is not a terminal.
func Accessible(stdin *os.File) bool {
	if os.Getenv("ACCESSIBLE") != "" {
		return true
	}
	return stdin == nil || !term.IsTerminal(int(stdin.Fd()))
}

// Choose implements Prompter.
func (h *Huh) Choose(ctx context.Context, title string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	value := options[0]
	if slices.Contains(options, def) {
		value = def
	}

	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value).
		Height(selectHeight(len(options), 12))

	if err := h.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm implements Prompter.
func (h *Huh) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := h.run(ctx, field); err != nil {
		return false, err
	}
	return value, nil
}

// Input implements Prompter.
func (h *Huh) Input(ctx context.Context, title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := h.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// run shows a single-field form, translating huh.ErrUserAborted to ErrAborted.
func (h *Huh) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.opts.Accessible).
		WithKeyMap(h.keymap).
		WithInput(h.opts.Input).
		WithOutput(h.opts.Output).
		WithProgramOptions(tea.WithoutSignalHandler())

	err := form.RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func selectHeight(n, limit int) int {
	// Title plus one line per option.
	h := n + 2
	if h > limit {
		return limit
	}
	return h
}
