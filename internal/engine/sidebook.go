package engine

import (
	"github.com/google/btree"

	"github.com/ekholm/matchcore/internal/domain"
)

// priceLevelEntry is the btree element for a side map: one per price,
// carrying the FIFO queue resting there. This generalizes the teacher's
// per-order btree.BTreeG[OrderBookEntry] (one entry per order, ordered by
// (price, time, id)) into one entry per price — the spec's level-per-price
// FIFO-queue design needs the B-tree only for ordered access to prices,
// not to orders, since arrival order within a level is handled by the
// queue itself.
type priceLevelEntry struct {
	price domain.Price
	level *priceLevel
}

// bidLess orders the bid side price descending, so Min() is the best bid
// (highest price).
func bidLess(a, b priceLevelEntry) bool { return a.price > b.price }

// askLess orders the ask side price ascending, so Min() is the best ask
// (lowest price).
func askLess(a, b priceLevelEntry) bool { return a.price < b.price }

// sideBook is an ordered Price → priceLevel map supporting O(log n)
// insert, best-of access, and arbitrary-price erase — one side (bids or
// asks) of the book.
type sideBook struct {
	tree *btree.BTreeG[priceLevelEntry]
}

func newSideBook(less btree.LessFunc[priceLevelEntry]) *sideBook {
	const degree = 32
	return &sideBook{tree: btree.NewG[priceLevelEntry](degree, less)}
}

// levelAt returns the level at price, inserting an empty one first if
// none exists yet.
func (s *sideBook) levelAt(price domain.Price) *priceLevel {
	if entry, ok := s.tree.Get(priceLevelEntry{price: price}); ok {
		return entry.level
	}
	level := newPriceLevel(price)
	s.tree.ReplaceOrInsert(priceLevelEntry{price: price, level: level})
	return level
}

// eraseIfEmpty removes the level at price if it has no live orders left.
// Invariant: a level is present in the side map iff it is non-empty.
func (s *sideBook) eraseIfEmpty(price domain.Price) {
	if entry, ok := s.tree.Get(priceLevelEntry{price: price}); ok && entry.level.empty() {
		s.tree.Delete(priceLevelEntry{price: price})
	}
}

// best returns the highest-priority level: best bid or best ask depending
// on which sideBook this is.
func (s *sideBook) best() (*priceLevel, bool) {
	entry, ok := s.tree.Min()
	if !ok {
		return nil, false
	}
	return entry.level, true
}

// worst returns the lowest-priority level on this side — the highest ask
// or lowest bid. Used only to rewrite a Market order into a marketable
// limit that is guaranteed to sweep the entire opposite side.
func (s *sideBook) worst() (*priceLevel, bool) {
	entry, ok := s.tree.Max()
	if !ok {
		return nil, false
	}
	return entry.level, true
}

func (s *sideBook) len() int { return s.tree.Len() }

// ascend walks levels in this side's priority order (best first).
func (s *sideBook) ascend(fn func(*priceLevel) bool) {
	s.tree.Ascend(func(e priceLevelEntry) bool { return fn(e.level) })
}
