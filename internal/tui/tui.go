// Package tui is the built-in terminal chooser: a filterable list of networks
// and a hidden prompt for keys.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	wifilog "github.com/shazow/wifimenu/internal/log"
	"github.com/shazow/wifimenu/wifi"
)

// Picker asks on the terminal. It draws on Output (stderr by default) so that
// stdout stays free for the result, and reads keys from the controlling
// terminal even when stdin carries scan output.
type Picker struct {
	Logs   *wifilog.Handler
	Input  io.Reader
	Output io.Writer
}

func (p *Picker) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.Input != nil {
		opts = append(opts, tea.WithInput(p.Input))
	} else {
		opts = append(opts, tea.WithInputTTY())
	}
	if p.Output != nil {
		opts = append(opts, tea.WithOutput(p.Output))
	} else {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	prog := tea.NewProgram(m, opts...)
	if p.Logs != nil {
		p.Logs.Attach(prog)
		defer p.Logs.Detach()
	}
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("error running picker: %w", err)
	}
	return final, nil
}

// Choose implements selector.Chooser.
func (p *Picker) Choose(ctx context.Context, prompt string, options []string) (string, error) {
	final, err := p.run(ctx, newPickerModel(prompt, options))
	if err != nil {
		return "", err
	}
	m := final.(pickerModel)
	if m.cancelled || m.choice == "" {
		return "", wifi.ErrChooserCancelled
	}
	return m.choice, nil
}

// Secret asks for a line of hidden input.
func (p *Picker) Secret(ctx context.Context, prompt string) (string, error) {
	final, err := p.run(ctx, newSecretModel(prompt))
	if err != nil {
		return "", err
	}
	m := final.(secretModel)
	if m.cancelled {
		return "", wifi.ErrChooserCancelled
	}
	return m.input.Value(), nil
}
