package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shazow/wifimenu/wifi"
)

// Fake is a Runner that answers from a table of canned outputs keyed by the
// full, unredacted command line. Commands without an entry fail with exit
// status 127.
type Fake struct {
	Outputs map[string]string
	Errors  map[string]error

	mu    sync.Mutex
	calls []string
	stdin []string
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	var input string
	if stdin != nil {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		input = string(b)
	}

	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.stdin = append(f.stdin, input)
	f.mu.Unlock()

	if err, ok := f.Errors[line]; ok {
		return nil, &wifi.CommandError{
			Command:  Redact(name, args),
			ExitCode: 1,
			Err:      err,
		}
	}
	out, ok := f.Outputs[line]
	if !ok {
		return nil, &wifi.CommandError{
			Command:  Redact(name, args),
			ExitCode: 127,
			Err:      fmt.Errorf("no canned output for %q", commandLine(name, args)),
		}
	}
	return []byte(out), nil
}

// Calls returns the command lines run so far.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Stdin returns what was piped into the last call.
func (f *Fake) Stdin() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stdin) == 0 {
		return ""
	}
	return f.stdin[len(f.stdin)-1]
}

// Count returns how many times a command line starting with prefix was run.
func (f *Fake) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
