package engine

import (
	"testing"
	"time"

	"github.com/ekholm/matchcore/internal/domain"
)

// fixedClock is a Clock that always reports the same instant, advanced
// manually by tests that need to simulate the passage of time.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestPruner_NextWakeRollsOverToNextDay(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)}
	p := NewPruner(NewBook(), WithClock(clock), WithCutoff(16, 0), WithJitter(0))

	wake := p.nextWake()
	want := 23 * time.Hour
	if wake != want {
		t.Fatalf("nextWake() = %v, want %v (cutoff already passed today)", wake, want)
	}
}

func TestPruner_NextWakeSameDayBeforeCutoff(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)}
	p := NewPruner(NewBook(), WithClock(clock), WithCutoff(16, 0), WithJitter(0))

	wake := p.nextWake()
	want := 6 * time.Hour
	if wake != want {
		t.Fatalf("nextWake() = %v, want %v", wake, want)
	}
}

func TestPruner_NextWakeIncludesJitter(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)}
	p := NewPruner(NewBook(), WithClock(clock), WithCutoff(16, 0), WithJitter(100*time.Millisecond))

	wake := p.nextWake()
	want := 6*time.Hour + 100*time.Millisecond
	if wake != want {
		t.Fatalf("nextWake() = %v, want %v", wake, want)
	}
}

func TestPruner_StopReturnsPromptly(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	b := NewBook()
	p := NewPruner(b, WithClock(clock), WithCutoff(16, 0), WithJitter(0))
	p.Start()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return promptly")
	}
}

func TestPruner_PruneCancelsOnlyGoodForDayOrders(t *testing.T) {
	b := NewBook()
	b.AddOrder(domain.NewOrder(domain.GoodForDay, 1, domain.Buy, 100, 10))
	b.AddOrder(domain.NewOrder(domain.GoodTillCancel, 2, domain.Buy, 99, 10))

	p := NewPruner(b)
	p.prune()

	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (only the GoodForDay order is pruned)", b.Size())
	}
	infos := b.GetOrderInfos()
	if len(infos.Bids) != 1 || infos.Bids[0].Price != 99 {
		t.Fatalf("remaining book = %+v, want only the GoodTillCancel order at 99", infos.Bids)
	}
}

func TestBook_CloseWaitsForPruner(t *testing.T) {
	b := NewBook()
	clock := &fixedClock{now: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	b.StartPruner(WithClock(clock), WithCutoff(16, 0), WithJitter(0))

	done := make(chan struct{})
	go func() {
		b.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return promptly")
	}
}
