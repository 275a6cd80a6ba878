// Package chooser asks the user to pick a line through an external menu
// program such as dmenu, rofi or fzf.
package chooser

import (
	"context"
	"fmt"
	"strings"

	"github.com/shazow/wifimenu/internal/runner"
	"github.com/shazow/wifimenu/wifi"
)

// promptVar is replaced by the prompt in command arguments.
const promptVar = "%p"

// Command runs a menu program that reads options on stdin and prints the
// chosen line on stdout. A non-zero exit is an error.
type Command struct {
	Runner runner.Runner
	Name   string
	Args   []string
	// SecretArgs are used when asking for a key. Nil when the program cannot
	// hide input.
	SecretArgs []string
}

type preset struct {
	args       []string
	secretArgs []string
}

var presets = map[string]preset{
	"dmenu": {
		args:       []string{"-i", "-l", "20", "-p", promptVar},
		secretArgs: []string{"-p", promptVar, "-nf", "black", "-nb", "black"},
	},
	"rofi": {
		args:       []string{"-dmenu", "-i", "-p", promptVar},
		secretArgs: []string{"-dmenu", "-password", "-p", promptVar},
	},
	"fzf": {
		args: []string{"--prompt", promptVar + "> ", "--no-sort"},
	},
}

// New builds a chooser from a command line. The names dmenu, rofi and fzf
// get suitable default arguments; anything else is split on whitespace and
// %p in its arguments is replaced by the prompt.
func New(r runner.Runner, command string) (*Command, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty chooser command: %w", wifi.ErrInvalidOption)
	}
	c := &Command{Runner: r, Name: fields[0], Args: fields[1:]}
	if p, ok := presets[command]; ok {
		c.Args = p.args
		c.SecretArgs = p.secretArgs
	}
	return c, nil
}

func expand(args []string, prompt string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, promptVar, prompt)
	}
	return out
}

// Choose implements selector.Chooser.
func (c *Command) Choose(ctx context.Context, prompt string, options []string) (string, error) {
	input := strings.NewReader(strings.Join(options, "\n") + "\n")
	out, err := c.Runner.Run(ctx, input, c.Name, expand(c.Args, prompt)...)
	if err != nil {
		return "", err
	}
	return firstLine(out)
}

// Secret asks for a line of hidden input.
func (c *Command) Secret(ctx context.Context, prompt string) (string, error) {
	if c.SecretArgs == nil {
		return "", fmt.Errorf("%s cannot read a secret, pass the key explicitly: %w", c.Name, wifi.ErrMissingKey)
	}
	out, err := c.Runner.Run(ctx, strings.NewReader(""), c.Name, expand(c.SecretArgs, prompt)...)
	if err != nil {
		return "", err
	}
	return firstLine(out)
}

func firstLine(out []byte) (string, error) {
	line, _, _ := strings.Cut(string(out), "\n")
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return "", wifi.ErrChooserCancelled
	}
	return line, nil
}
