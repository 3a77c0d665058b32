package engine

import (
	"container/list"
	"log/slog"
	"sync"

	"github.com/ekholm/matchcore/internal/domain"
)

// orderLocation is the order index entry: the order handle plus a
// back-pointer to the level and the exact queue position inside it, so a
// cancel is O(1) instead of a queue re-scan.
type orderLocation struct {
	order *domain.Order
	side  domain.Side
	level *priceLevel
	elem  *list.Element
}

// Book is the two-sided price-ordered order book for a single instrument:
// bids and asks, an order index for O(1) cancel, and a level-data index
// for O(#levels) fill-or-kill feasibility. A single sync.RWMutex
// serializes every mutation and every read that depends on
// cross-structure consistency (order index, side maps, level data).
// Readers (Size, GetOrderInfos, goodForDayOrderIds, and ModifyOrder's
// lookup of the existing order's type) take the read lock; every mutation
// takes the write lock.
type Book struct {
	mu        sync.RWMutex
	bids      *sideBook
	asks      *sideBook
	index     map[domain.OrderId]*orderLocation
	levelData map[domain.Price]*levelData
	logger    *slog.Logger

	pruner *Pruner
}

// BookOption configures a Book at construction.
type BookOption func(*Book)

// WithBookLogger overrides the book's logger (defaults to slog.Default()).
func WithBookLogger(l *slog.Logger) BookOption {
	return func(b *Book) { b.logger = l }
}

// NewBook creates an empty book.
func NewBook(opts ...BookOption) *Book {
	b := &Book{
		bids:      newSideBook(bidLess),
		asks:      newSideBook(askLess),
		index:     make(map[domain.OrderId]*orderLocation),
		levelData: make(map[domain.Price]*levelData),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Book) sideBookFor(side domain.Side) *sideBook {
	if side == domain.Buy {
		return b.bids
	}
	return b.asks
}

// enqueueNew appends order to the tail of its side's queue at its price,
// indexes it for O(1) lookup, and adds its initial quantity to the
// level-data cache. Caller must hold the write lock.
func (b *Book) enqueueNew(order *domain.Order) {
	side := b.sideBookFor(order.Side())
	level := side.levelAt(order.Price())
	elem := level.pushBack(order)
	b.index[order.OrderId()] = &orderLocation{order: order, side: order.Side(), level: level, elem: elem}
	b.addLevelData(order.Price(), order.InitialQuantity())
}

// dequeue removes orderId from its level queue via the stored element
// (O(1)), erases the level if it's now empty, removes the index entry,
// and subtracts the order's remaining quantity from the level-data cache.
// No-op for an unknown id. Caller must hold the write lock.
func (b *Book) dequeue(orderId domain.OrderId) {
	loc, ok := b.index[orderId]
	if !ok {
		return
	}
	delete(b.index, orderId)
	loc.level.remove(loc.elem)
	b.sideBookFor(loc.side).eraseIfEmpty(loc.order.Price())
	b.removeLevelData(loc.order.Price(), loc.order.RemainingQuantity())
}

// partialFill decrements the level-data quantity at price by qty. It does
// not remove the order — the matching loop calls dequeue separately once
// an order's remaining quantity reaches zero.
func (b *Book) partialFill(price domain.Price, qty domain.Quantity) {
	if ld, ok := b.levelData[price]; ok {
		ld.quantity -= qty
	}
}

func (b *Book) addLevelData(price domain.Price, qty domain.Quantity) {
	ld, ok := b.levelData[price]
	if !ok {
		ld = &levelData{}
		b.levelData[price] = ld
	}
	ld.count++
	ld.quantity += qty
}

func (b *Book) removeLevelData(price domain.Price, qty domain.Quantity) {
	ld, ok := b.levelData[price]
	if !ok {
		return
	}
	ld.count--
	ld.quantity -= qty
	if ld.count <= 0 {
		delete(b.levelData, price)
	}
}

// AddOrder submits order to the book. See matching.go for the admission
// policy (duplicate rejection, Market rewrite, FAK/FOK feasibility) and
// the matching loop itself. Returns the trades formed as a direct
// consequence of this call, in the order they were formed; an empty
// result means the order rests, was rejected, or simply didn't cross.
func (b *Book) AddOrder(order *domain.Order) domain.Trades {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addOrderLocked(order)
}

// CancelOrder removes orderId from the book. Unknown ids are a silent
// no-op, matching the matching core's business-rejection policy.
func (b *Book) CancelOrder(orderId domain.OrderId) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dequeue(orderId)
}

// CancelOrders cancels every id in ids under a single lock acquisition.
// Unknown ids are silently skipped.
func (b *Book) CancelOrders(ids domain.OrderIds) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.dequeue(id)
	}
}

// ModifyOrder is cancel+replace: it reads the existing order's type under
// the lock (the descriptor itself omits it), releases the lock, cancels
// the old id, then adds a replacement carrying the same id, the same
// type, and modify's side/price/quantity. Cancel and Add are independent
// lock acquisitions — a concurrent Add reusing the same id in between
// would cause the replacement to be rejected as a duplicate; this
// specification permits that race rather than making modify atomic.
// Unknown ids yield no trades and leave the book unchanged.
func (b *Book) ModifyOrder(modify domain.OrderModify) domain.Trades {
	b.mu.RLock()
	loc, ok := b.index[modify.OrderId()]
	var orderType domain.OrderType
	if ok {
		orderType = loc.order.OrderType()
	}
	b.mu.RUnlock()
	if !ok {
		return nil
	}

	b.CancelOrder(modify.OrderId())
	return b.AddOrder(modify.ToOrder(orderType))
}

// Size returns the count of live orders on the book.
func (b *Book) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.index)
}

// GetOrderInfos returns a value-copy snapshot: bids ordered highest price
// first, asks lowest price first, each level's quantity the sum of
// remaining quantity resting at that price.
func (b *Book) GetOrderInfos() domain.LevelInfos {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var infos domain.LevelInfos
	b.bids.ascend(func(level *priceLevel) bool {
		infos.Bids = append(infos.Bids, domain.LevelInfo{Price: level.price, Quantity: b.levelQuantity(level.price)})
		return true
	})
	b.asks.ascend(func(level *priceLevel) bool {
		infos.Asks = append(infos.Asks, domain.LevelInfo{Price: level.price, Quantity: b.levelQuantity(level.price)})
		return true
	})
	return infos
}

func (b *Book) levelQuantity(price domain.Price) domain.Quantity {
	if ld, ok := b.levelData[price]; ok {
		return ld.quantity
	}
	return 0
}

// goodForDayOrderIds collects the ids of every live GoodForDay order.
// Called by Pruner under its own read of the book; it takes the lock
// itself so the pruner never has to reach into book internals.
func (b *Book) goodForDayOrderIds() domain.OrderIds {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ids domain.OrderIds
	for id, loc := range b.index {
		if loc.order.OrderType() == domain.GoodForDay {
			ids = append(ids, id)
		}
	}
	return ids
}

// StartPruner attaches a Pruner to this book and starts its background
// goroutine. Close stops it. Callers that don't need end-of-day pruning
// simply never call this.
func (b *Book) StartPruner(opts ...PrunerOption) *Pruner {
	p := NewPruner(b, opts...)
	p.Start()
	b.pruner = p
	return p
}

// Close stops the book's pruner, if one was started, and waits for it to
// exit before returning — the Go analogue of "the destructor of the book
// must wait for the pruner to finish."
func (b *Book) Close() {
	if b.pruner != nil {
		b.pruner.Stop()
	}
}
