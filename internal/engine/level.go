package engine

import (
	"container/list"

	"github.com/ekholm/matchcore/internal/domain"
)

// priceLevel is the FIFO queue of live orders resting at a single price on
// one side: insertion order equals arrival order, i.e. time priority. It
// is the Go encoding of the design note's "intrusive doubly-linked list" —
// container/list.Element is the stable handle a C++ std::list::iterator
// would have been, so removing an order is O(1) regardless of queue
// position.
type priceLevel struct {
	price  domain.Price
	orders *list.List // elements are *domain.Order
}

func newPriceLevel(price domain.Price) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

func (l *priceLevel) empty() bool { return l.orders.Len() == 0 }

// front returns the order with the earliest arrival at this price, or nil
// if the level is empty.
func (l *priceLevel) front() *domain.Order {
	elem := l.orders.Front()
	if elem == nil {
		return nil
	}
	return elem.Value.(*domain.Order)
}

// pushBack appends order to the tail of the queue and returns the stable
// element handle used for O(1) removal.
func (l *priceLevel) pushBack(order *domain.Order) *list.Element {
	return l.orders.PushBack(order)
}

func (l *priceLevel) remove(elem *list.Element) {
	l.orders.Remove(elem)
}

// levelData is the per-price aggregate cache: live order count and total
// remaining quantity across both FIFO queue and level-data index. It
// duplicates information recoverable from the side maps; it exists so
// CanFullyFill (see matching.go) is O(#levels) rather than O(#orders).
// Every Add/Cancel/Match writes through it. Entries are removed once
// count reaches zero.
type levelData struct {
	count    int
	quantity domain.Quantity
}
