// Package runner executes the external tools everything else is built on.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

// Runner runs an external program and returns its stdout. A non-zero exit is
// returned as a *wifi.CommandError.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// Exec runs programs with os/exec.
type Exec struct {
	Logger *slog.Logger
}

// Run implements Runner.
func (r Exec) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("running command", "command", commandLine(name, args))

	c := exec.CommandContext(ctx, name, args...)
	c.Stdin = stdin
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout.Bytes(), &wifi.CommandError{
			Command:  Redact(name, args),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}

// DryRun logs the commands it would have run and returns empty output.
type DryRun struct {
	Logger *slog.Logger
}

// Run implements Runner.
func (r DryRun) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("dry run: skipping command", "command", commandLine(name, args))
	return nil, nil
}

// secretArgs are arguments whose following argument is a secret.
var secretArgs = map[string]bool{
	"wifi-sec.psk":                 true,
	"802-11-wireless-security.psk": true,
	"wifi-sec.wep-key0":            true,
}

// Redacted replaces secrets in logged and reported command lines.
const Redacted = "<redacted>"

// Redact returns the command line with every secret argument replaced by
// Redacted.
func Redact(name string, args []string) []string {
	line := make([]string, 0, len(args)+1)
	line = append(line, name)
	for i := 0; i < len(args); i++ {
		line = append(line, args[i])
		if secretArgs[args[i]] && i+1 < len(args) {
			line = append(line, Redacted)
			i++
		}
	}
	return line
}

func commandLine(name string, args []string) string {
	return strings.Join(Redact(name, args), " ")
}
