package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// defaultCutoffHour, defaultCutoffMinute, and defaultJitter match spec.md's
// "nominally 16:00 local" default cutoff and "e.g. 100ms" default jitter.
const (
	defaultCutoffHour   = 16
	defaultCutoffMinute = 0
	defaultJitter       = 100 * time.Millisecond
)

// Pruner is the background task that cancels GoodForDay orders once the
// configured local-time cutoff has passed. It parks on a timer computed
// from the clock and the cutoff rather than busy-polling, generalizing
// the teacher's ExpiryManager (a fixed-interval time.Ticker, which can't
// express "wake at a specific wall-clock cutoff") into a recomputed
// per-cycle wait. Stop closes stopCh, which wakes the goroutine
// immediately if it's waiting on the timer; a prune already in progress
// runs to completion before the goroutine exits.
type Pruner struct {
	book         *Book
	clock        Clock
	cutoffHour   int
	cutoffMinute int
	jitter       time.Duration
	logger       *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// PrunerOption configures a Pruner at construction.
type PrunerOption func(*Pruner)

// WithClock overrides the pruner's time source (default SystemClock).
func WithClock(c Clock) PrunerOption { return func(p *Pruner) { p.clock = c } }

// WithCutoff overrides the daily local-time cutoff (default 16:00).
func WithCutoff(hour, minute int) PrunerOption {
	return func(p *Pruner) { p.cutoffHour = hour; p.cutoffMinute = minute }
}

// WithJitter overrides the wake jitter added after the cutoff (default 100ms).
func WithJitter(d time.Duration) PrunerOption { return func(p *Pruner) { p.jitter = d } }

// WithPrunerLogger overrides the pruner's logger (default slog.Default()).
func WithPrunerLogger(l *slog.Logger) PrunerOption { return func(p *Pruner) { p.logger = l } }

// NewPruner creates a Pruner bound to book. It does not start the
// background goroutine; call Start (or go through Book.StartPruner).
func NewPruner(book *Book, opts ...PrunerOption) *Pruner {
	p := &Pruner{
		book:         book,
		clock:        SystemClock{},
		cutoffHour:   defaultCutoffHour,
		cutoffMinute: defaultCutoffMinute,
		jitter:       defaultJitter,
		logger:       slog.Default(),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the pruner's background goroutine. Call once; Start is
// not safe to call concurrently with itself.
func (p *Pruner) Start() {
	go p.run()
}

// Stop signals the pruner to exit and blocks until its goroutine has
// returned. Only call after Start.
func (p *Pruner) Stop() {
	close(p.stopCh)
	<-p.doneCh
}

func (p *Pruner) run() {
	defer close(p.doneCh)
	for {
		timer := time.NewTimer(p.nextWake())
		select {
		case <-p.stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		select {
		case <-p.stopCh:
			return
		default:
			p.prune()
		}
	}
}

// nextWake computes the duration until the next cutoff-plus-jitter,
// rolling over to the following day if today's cutoff has already
// passed.
func (p *Pruner) nextWake() time.Duration {
	now := p.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), p.cutoffHour, p.cutoffMinute, 0, 0, now.Location())
	if !cutoff.After(now) {
		cutoff = cutoff.AddDate(0, 0, 1)
	}
	return cutoff.Sub(now) + p.jitter
}

// prune collects GoodForDay order ids under the book's lock, releases it,
// then cancels them via CancelOrders (which re-acquires the lock once).
func (p *Pruner) prune() {
	tickID := uuid.New().String()

	ids := p.book.goodForDayOrderIds()
	p.logger.Info("pruner wake", slog.String("tick_id", tickID), slog.Int("candidates", len(ids)))
	if len(ids) == 0 {
		return
	}

	p.book.CancelOrders(ids)
	p.logger.Info("pruner cancelled good-for-day orders", slog.String("tick_id", tickID), slog.Int("count", len(ids)))
}
