package engine

import (
	"testing"

	"github.com/ekholm/matchcore/internal/domain"
)

func TestBidLess_PriceDescending(t *testing.T) {
	a := priceLevelEntry{price: 200}
	b := priceLevelEntry{price: 100}
	if !bidLess(a, b) {
		t.Error("expected higher price to be less on the bid side")
	}
	if bidLess(b, a) {
		t.Error("expected lower price to not be less on the bid side")
	}
}

func TestAskLess_PriceAscending(t *testing.T) {
	a := priceLevelEntry{price: 100}
	b := priceLevelEntry{price: 200}
	if !askLess(a, b) {
		t.Error("expected lower price to be less on the ask side")
	}
	if askLess(b, a) {
		t.Error("expected higher price to not be less on the ask side")
	}
}

func TestSideBook_BestIsMinAccordingToComparator(t *testing.T) {
	bids := newSideBook(bidLess)
	bids.levelAt(100)
	bids.levelAt(150)
	bids.levelAt(125)

	best, ok := bids.best()
	if !ok || best.price != 150 {
		t.Fatalf("best() = %v, want 150", best)
	}
}

func TestSideBook_WorstIsMax(t *testing.T) {
	asks := newSideBook(askLess)
	asks.levelAt(100)
	asks.levelAt(150)
	asks.levelAt(125)

	worst, ok := asks.worst()
	if !ok || worst.price != 150 {
		t.Fatalf("worst() = %v, want 150", worst)
	}
}

func TestSideBook_EraseIfEmptyRemovesVacatedLevel(t *testing.T) {
	side := newSideBook(bidLess)
	level := side.levelAt(100)
	elem := level.pushBack(domain.NewOrder(domain.GoodTillCancel, 1, domain.Buy, 100, 1))

	side.eraseIfEmpty(100) // non-empty, should stay
	if side.len() != 1 {
		t.Fatalf("len() = %d, want 1 (level still has an order)", side.len())
	}

	level.remove(elem)
	side.eraseIfEmpty(100)
	if side.len() != 0 {
		t.Fatalf("len() = %d, want 0 (level is empty)", side.len())
	}
}

func TestSideBook_LevelAtReusesExistingLevel(t *testing.T) {
	side := newSideBook(askLess)
	l1 := side.levelAt(100)
	l2 := side.levelAt(100)
	if l1 != l2 {
		t.Fatal("levelAt() returned a different level for the same price")
	}
	if side.len() != 1 {
		t.Fatalf("len() = %d, want 1", side.len())
	}
}
