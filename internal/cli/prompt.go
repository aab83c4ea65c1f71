package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onehabit/internal/tracker"
	"github.com/julianstephens/onehabit/internal/validation"
)

// ErrCancelled is returned when the user backs out of a prompt
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for input that was not given as flags
type Prompter interface {
	Confirm(title, description string) (bool, error)
	GoalForm(in *tracker.GoalInput) error
}

// HuhPrompter shows interactive terminal forms
type HuhPrompter struct{}

func (HuhPrompter) Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func (HuhPrompter) GoalForm(in *tracker.GoalInput) error {
	target := ""
	if in.TargetValue > 0 {
		target = fmt.Sprintf("%g", in.TargetValue)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Placeholder("Read 20 days this month").
				Value(&in.Title).
				Validate(func(s string) error {
					_, err := validation.ValidateTitle(s)
					return err
				}),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewInput().
				Title("Target").
				Value(&target).
				Validate(func(s string) error {
					_, err := ParseTarget(s)
					return err
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("check-ins").
				Value(&in.Unit),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}

	v, err := ParseTarget(target)
	if err != nil {
		return err
	}
	in.TargetValue = v
	return nil
}
