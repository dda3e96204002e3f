// Package prompt asks the user for template variable values on a terminal.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// Prompter abstracts the terminal so callers can be tested without one.
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
}

type surveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurvey returns a Prompter backed by survey. Extra ask options, such as
// survey.WithStdio, apply to every prompt.
func NewSurvey(opts ...survey.AskOpt) Prompter {
	return &surveyPrompter{opts: opts}
}

func (p *surveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, p.askOpts(cfg)...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Password{
		Message: cfg.Message,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &out, p.askOpts(cfg)...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) askOpts(cfg InputConfig) []survey.AskOpt {
	opts := append([]survey.AskOpt(nil), p.opts...)
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	return opts
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Scripted answers prompts from a fixed map keyed by message. It backs
// non-interactive runs and tests.
type Scripted map[string]string

func (s Scripted) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, ok := s[cfg.Message]
	if !ok {
		answer = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (s Scripted) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}
