package main

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/pkg/errors"
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("aborted")

// confirmer asks a yes/no question.
type confirmer func(ctx context.Context, message string) (bool, error)

func surveyConfirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, errAborted
		}
		return false, err
	}
	return out, nil
}
