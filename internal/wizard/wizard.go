// Package wizard drives the six-step diagnostic form: it owns the working
// snapshot, mirrors it to a draft store after every change, and hands the
// final snapshot and metrics to a save collaborator.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/blackwell-systems/funnelplan/internal/analyzer"
	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/blackwell-systems/funnelplan/internal/draft"
	"github.com/rs/zerolog"
)

// ErrNotAtResults is returned by Save before the results step is reached.
var ErrNotAtResults = errors.New("wizard: save is only allowed on the results step")

// Wizard is a single diagnostic session. It is not safe for concurrent use.
type Wizard struct {
	clientID string
	store    draft.Store
	step     Step
	snapshot diagnostic.Snapshot
	drafted  bool

	onSave  SaveFunc
	onClose CloseFunc
	log     zerolog.Logger
}

// New starts a session for clientID, resuming the stored draft and step when
// present. A missing or unreadable draft starts from the defaults.
func New(ctx context.Context, clientID string, store draft.Store, opts ...Option) *Wizard {
	if store == nil {
		store = draft.NewMemory()
	}
	w := &Wizard{
		clientID: clientID,
		store:    store,
		step:     StepFinancial,
		snapshot: diagnostic.Defaults(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With().Str("client", clientID).Logger()
	w.resume(ctx)
	return w
}

func (w *Wizard) resume(ctx context.Context) {
	raw, ok, err := w.store.Get(ctx, draft.Key(w.clientID))
	switch {
	case err != nil:
		w.log.Warn().Err(err).Msg("reading draft; starting from defaults")
		return
	case !ok:
		w.log.Debug().Msg("no draft found")
		return
	}

	s, err := diagnostic.Parse([]byte(raw), diagnostic.FormatJSON)
	if err != nil {
		w.log.Warn().Err(err).Msg("discarding unreadable draft")
		return
	}
	w.snapshot = s
	w.drafted = true

	rawStep, ok, err := w.store.Get(ctx, draft.StepKey(w.clientID))
	if err != nil || !ok {
		w.log.Debug().Msg("draft restored without step")
		return
	}
	n, err := strconv.Atoi(rawStep)
	if err != nil || !Step(n).Valid() {
		w.log.Warn().Str("step", rawStep).Msg("ignoring invalid stored step")
		return
	}
	w.step = Step(n)
	w.log.Debug().Stringer("step", w.step).Msg("draft restored")
}

// ClientID returns the client this session belongs to.
func (w *Wizard) ClientID() string { return w.clientID }

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Snapshot returns the working snapshot.
func (w *Wizard) Snapshot() diagnostic.Snapshot { return w.snapshot }

// Next advances one step. It does nothing on the results step.
func (w *Wizard) Next(ctx context.Context) error {
	if w.step >= StepResults {
		return nil
	}
	return w.setStep(ctx, w.step+1)
}

// Previous goes back one step. On the first step it invokes the close
// collaborator instead.
func (w *Wizard) Previous(ctx context.Context) error {
	if w.step <= StepFinancial {
		w.log.Debug().Msg("closing wizard")
		if w.onClose != nil {
			w.onClose()
		}
		return nil
	}
	return w.setStep(ctx, w.step-1)
}

// setStep moves to s and records it. The snapshot is written first when no
// draft exists yet, so a stored step never lacks its draft.
func (w *Wizard) setStep(ctx context.Context, s Step) error {
	w.step = s
	if !w.drafted {
		if err := w.persist(ctx); err != nil {
			return err
		}
	}
	if err := w.store.Set(ctx, draft.StepKey(w.clientID), strconv.Itoa(int(s))); err != nil {
		return fmt.Errorf("saving wizard step: %w", err)
	}
	return nil
}

// Update replaces the working snapshot and mirrors it to the draft store.
// The snapshot is replaced even when the draft write fails.
func (w *Wizard) Update(ctx context.Context, s diagnostic.Snapshot) error {
	w.snapshot = diagnostic.Normalize(s)
	return w.persist(ctx)
}

// SetBusinessType switches the business type and resets the benchmark
// conversion rates to its preset.
func (w *Wizard) SetBusinessType(ctx context.Context, bt diagnostic.BusinessType) error {
	s := w.snapshot
	s.Benchmark.BusinessType = bt
	s.Benchmark.ConversionRates = diagnostic.DefaultsFor(bt)
	return w.Update(ctx, s)
}

func (w *Wizard) persist(ctx context.Context) error {
	data, err := json.Marshal(w.snapshot)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := w.store.Set(ctx, draft.Key(w.clientID), string(data)); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	w.drafted = true
	return nil
}

// Metrics derives the metrics of the working snapshot.
func (w *Wizard) Metrics() diagnostic.Metrics {
	return analyzer.CalculateMetrics(w.snapshot)
}

// ShowsMetrics reports whether the current step displays live metrics.
func (w *Wizard) ShowsMetrics() bool {
	return w.step.ShowsMetrics()
}

// Reset returns to the first step with default values and removes the draft.
func (w *Wizard) Reset(ctx context.Context) error {
	w.step = StepFinancial
	w.snapshot = diagnostic.Defaults()
	w.drafted = false
	if err := w.store.Clear(ctx, draft.Key(w.clientID)); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	if err := w.store.Clear(ctx, draft.StepKey(w.clientID)); err != nil {
		return fmt.Errorf("clearing wizard step: %w", err)
	}
	w.log.Debug().Msg("wizard reset")
	return nil
}

// Save computes the final metrics and hands them with the snapshot to the
// save collaborator. The collaborator's error is returned unchanged.
func (w *Wizard) Save(ctx context.Context) (diagnostic.Metrics, error) {
	if w.step != StepResults {
		return diagnostic.Metrics{}, ErrNotAtResults
	}
	m := w.Metrics()
	if w.onSave == nil {
		return m, nil
	}
	if err := w.onSave(ctx, w.clientID, w.snapshot, m); err != nil {
		w.log.Error().Err(err).Msg("saving diagnostic")
		return m, err
	}
	w.log.Info().Int("recommendations", len(m.Recommendations)).Msg("diagnostic saved")
	return m, nil
}
