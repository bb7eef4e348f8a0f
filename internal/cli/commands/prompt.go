package commands

import (
	"github.com/AlecAivazis/survey/v2"
)

// prompter asks the user for missing values
type prompter interface {
	Input(message, defaultValue, help string) (string, error)
}

// surveyPrompter prompts on the terminal
type surveyPrompter struct{}

func (surveyPrompter) Input(message, defaultValue, help string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
		Help:    help,
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return answer, nil
}
