package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/shazow/wifimenu/internal/runner"
	"github.com/shazow/wifimenu/wifi"
)

// Method is where scan output comes from.
type Method int

const (
	// MethodIwDump reads the kernel's cached scan table.
	MethodIwDump Method = iota
	// MethodIwScan triggers a synchronous scan and waits for it.
	MethodIwScan
	MethodWpaCli
	MethodNmcli
	// MethodFile reads previously saved output of Scanner.Tool.
	MethodFile
	// MethodStdin is MethodFile for standard input. It is read once.
	MethodStdin
)

var methodNames = map[Method]string{
	MethodIwDump: "iw-dump",
	MethodIwScan: "iw-scan",
	MethodWpaCli: "wpa_cli",
	MethodNmcli:  "nmcli",
	MethodFile:   "file",
	MethodStdin:  "stdin",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMethod parses a scan method name as accepted on the command line.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown scan method %q: %w", s, wifi.ErrInvalidOption)
}

// Scanner produces raw scan output with the configured method.
type Scanner struct {
	Runner    runner.Runner
	Method    Method
	Interface string

	// Tool, Path and Stdin apply to MethodFile and MethodStdin.
	Tool  Tool
	Path  string
	Stdin io.Reader

	stdinOnce   sync.Once
	stdinOutput string
	stdinErr    error
}

// Scan returns the output of one scan. When sync is set the scan bypasses any
// cached results: nmcli and wpa_cli are asked to rescan, every other method
// escalates to a blocking `iw dev <iface> scan`.
func (s *Scanner) Scan(ctx context.Context, sync bool) (Result, error) {
	switch s.Method {
	case MethodNmcli:
		rescan := "no"
		if sync {
			rescan = "yes"
		}
		args := []string{"--terse", "--fields", "SECURITY,SIGNAL,SSID", "device", "wifi", "list", "--rescan", rescan}
		if s.Interface != "" {
			args = append(args, "ifname", s.Interface)
		}
		return s.run(ctx, ToolNmcli, "nmcli", args...)
	case MethodWpaCli:
		if sync {
			if _, err := s.Runner.Run(ctx, nil, "wpa_cli", "scan"); err != nil {
				return Result{}, err
			}
		}
		return s.run(ctx, ToolWpaCli, "wpa_cli", "scan_results")
	}

	if sync || s.Method == MethodIwScan {
		return s.iw(ctx, "scan")
	}

	switch s.Method {
	case MethodIwDump:
		return s.iw(ctx, "scan", "dump")
	case MethodFile:
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read scan file: %w", err)
		}
		return Result{Tool: s.Tool, Output: string(b)}, nil
	case MethodStdin:
		s.stdinOnce.Do(func() {
			if s.Stdin == nil {
				s.stdinErr = fmt.Errorf("no stdin to read scan from: %w", wifi.ErrInvalidOption)
				return
			}
			b, err := io.ReadAll(s.Stdin)
			s.stdinOutput, s.stdinErr = string(b), err
		})
		return Result{Tool: s.Tool, Output: s.stdinOutput}, s.stdinErr
	}
	return Result{}, fmt.Errorf("unsupported scan method %s: %w", s.Method, wifi.ErrInvalidOption)
}

func (s *Scanner) iw(ctx context.Context, args ...string) (Result, error) {
	if s.Interface == "" {
		return Result{}, fmt.Errorf("iw needs a wireless interface: %w", wifi.ErrInvalidOption)
	}
	return s.run(ctx, ToolIw, "iw", append([]string{"dev", s.Interface}, args...)...)
}

func (s *Scanner) run(ctx context.Context, tool Tool, name string, args ...string) (Result, error) {
	out, err := s.Runner.Run(ctx, nil, name, args...)
	if err != nil {
		return Result{}, err
	}
	return Result{Tool: tool, Output: string(out)}, nil
}
