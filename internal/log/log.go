// Package log keeps recent log records around so the built-in picker can show
// them while it owns the terminal.
package log

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// keep is how many records the handler remembers.
const keep = 20

// Handler is a slog.Handler that remembers the latest records and forwards
// them to a tea.Program when one is attached.
type Handler struct {
	slog.Handler
	state *state
}

type state struct {
	mu   sync.Mutex
	send func(tea.Msg)
	logs []slog.Record
}

// NewHandler wraps handler.
func NewHandler(handler slog.Handler) *Handler {
	return &Handler{Handler: handler, state: &state{}}
}

// Handle records r. While a program is attached the record is forwarded to it
// and the wrapped handler is skipped, since the program owns the terminal.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.state.mu.Lock()
	h.state.logs = append(h.state.logs, r.Clone())
	if len(h.state.logs) > keep {
		h.state.logs = h.state.logs[1:]
	}
	send := h.state.send
	h.state.mu.Unlock()

	if send != nil {
		send(LogMsg(r))
		return nil
	}
	if !h.Handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.Handler.Handle(ctx, r)
}

// Enabled reports true for every level while a program is attached, so the
// picker sees debug records too.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	h.state.mu.Lock()
	attached := h.state.send != nil
	h.state.mu.Unlock()
	return attached || h.Handler.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs), state: h.state}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name), state: h.state}
}

// Logs returns a copy of the remembered records, oldest first.
func (h *Handler) Logs() []slog.Record {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return append([]slog.Record(nil), h.state.logs...)
}

// Attach forwards every record to p until Detach is called.
func (h *Handler) Attach(p *tea.Program) {
	h.SetOutput(p.Send)
}

// Detach stops forwarding records.
func (h *Handler) Detach() {
	h.SetOutput(nil)
}

// SetOutput sets the function records are forwarded to.
func (h *Handler) SetOutput(send func(tea.Msg)) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.send = send
}

// LogMsg is a tea.Msg that represents a log message.
type LogMsg slog.Record

var defaultHandler *Handler

// Init installs a Handler wrapping handler as the default slog logger.
func Init(handler slog.Handler) *Handler {
	defaultHandler = NewHandler(handler)
	slog.SetDefault(slog.New(defaultHandler))
	return defaultHandler
}

// Default returns the handler installed by Init, or nil.
func Default() *Handler {
	return defaultHandler
}
