package wizard

import (
	"context"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/rs/zerolog"
)

// SaveFunc persists a confirmed diagnostic.
type SaveFunc func(ctx context.Context, clientID string, s diagnostic.Snapshot, m diagnostic.Metrics) error

// CloseFunc is invoked when the user backs out of the first step.
type CloseFunc func()

// Option configures a Wizard.
type Option func(*Wizard)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Wizard) { w.log = l }
}

// OnSave sets the save collaborator.
func OnSave(fn SaveFunc) Option {
	return func(w *Wizard) { w.onSave = fn }
}

// OnClose sets the close collaborator.
func OnClose(fn CloseFunc) Option {
	return func(w *Wizard) { w.onClose = fn }
}
