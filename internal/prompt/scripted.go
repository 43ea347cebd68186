package prompt

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Scripted answers prompts from fixed queues. It is used in tests and when
// answers come from flags. An exhausted queue aborts the prompt.
type Scripted struct {
	mu       sync.Mutex
	choices  []string
	confirms []bool
	inputs   []string
	asked    []string
}

// NewScripted creates a prompter that replays the given choices in order.
func NewScripted(choices ...string) *Scripted {
	return &Scripted{choices: choices}
}

// WithConfirms queues answers for Confirm.
func (s *Scripted) WithConfirms(answers ...bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms = append(s.confirms, answers...)
	return s
}

// WithInputs queues answers for Input.
func (s *Scripted) WithInputs(answers ...string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, answers...)
	return s
}

// Asked returns the titles of every prompt shown so far.
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Choose implements Prompter. The scripted answer must be one of options.
func (s *Scripted) Choose(ctx context.Context, title string, options []string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrAborted
	}
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, title)

	if len(s.choices) == 0 {
		return "", fmt.Errorf("%w: no answer for %q", ErrAborted, title)
	}
	answer := s.choices[0]
	s.choices = s.choices[1:]

	if !slices.Contains(options, answer) {
		return "", fmt.Errorf("%q is not one of %v", answer, options)
	}
	return answer, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(ctx context.Context, message string, _ bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrAborted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)

	if len(s.confirms) == 0 {
		return false, fmt.Errorf("%w: no answer for %q", ErrAborted, message)
	}
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

// Input implements Prompter. validate runs against the scripted answer.
func (s *Scripted) Input(ctx context.Context, title string, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrAborted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, title)

	if len(s.inputs) == 0 {
		return "", fmt.Errorf("%w: no answer for %q", ErrAborted, title)
	}
	answer := s.inputs[0]
	s.inputs = s.inputs[1:]

	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}
