package main

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted reports that the user cancelled a prompt.
var errAborted = errors.New("prompt aborted")

// PromptDriver abstracts the terminal prompts so the play loop can be driven
// without a real terminal.
type PromptDriver interface {
	Select(message string, options []string) (string, error)
	Input(message, help string) (string, error)
}

type surveyDriver struct{}

func newSurveyDriver() PromptDriver {
	return surveyDriver{}
}

func (surveyDriver) Select(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", mapPromptError(err)
	}
	return out, nil
}

func (surveyDriver) Input(message, help string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Help: help}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", mapPromptError(err)
	}
	return out, nil
}

func mapPromptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
