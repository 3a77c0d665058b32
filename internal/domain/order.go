package domain

// Order is a single resting or immediate order. Identity (OrderId, Side,
// initial Price, initial Quantity) is fixed at construction; only
// remainingQuantity and, once, the price and order type (see
// ToGoodTillCancel) ever change, and only under the book's lock.
type Order struct {
	orderType         OrderType
	orderId           OrderId
	side              Side
	price             Price
	initialQuantity   Quantity
	remainingQuantity Quantity
}

// NewOrder builds a limit order: GoodTillCancel, GoodForDay, FillAndKill,
// or FillOrKill, all of which carry an explicit limit price.
func NewOrder(orderType OrderType, orderId OrderId, side Side, price Price, quantity Quantity) *Order {
	return &Order{
		orderType:         orderType,
		orderId:           orderId,
		side:              side,
		price:             price,
		initialQuantity:   quantity,
		remainingQuantity: quantity,
	}
}

// NewMarketOrder builds a Market order. It carries no price until the
// matching engine rewrites it via ToGoodTillCancel (see the AddOrder
// policy in package engine): a Market order is never enqueued at its
// zero price.
func NewMarketOrder(orderId OrderId, side Side, quantity Quantity) *Order {
	return NewOrder(Market, orderId, side, 0, quantity)
}

func (o *Order) OrderId() OrderId            { return o.orderId }
func (o *Order) OrderType() OrderType        { return o.orderType }
func (o *Order) Side() Side                  { return o.side }
func (o *Order) Price() Price                { return o.price }
func (o *Order) InitialQuantity() Quantity   { return o.initialQuantity }
func (o *Order) RemainingQuantity() Quantity { return o.remainingQuantity }
func (o *Order) FilledQuantity() Quantity    { return o.initialQuantity - o.remainingQuantity }
func (o *Order) IsFilled() bool              { return o.remainingQuantity == 0 }

// Fill reduces the remaining quantity by quantity. It panics with an
// OverfillError if quantity exceeds what remains — that can only happen
// from a matcher bug (the matching loop always fills by
// min(remaining bid, remaining ask)), so there is nothing a caller could
// do to recover and the panic is left to propagate.
func (o *Order) Fill(quantity Quantity) {
	if quantity > o.remainingQuantity {
		panic(&OverfillError{OrderId: o.orderId, Requested: quantity, Remaining: o.remainingQuantity})
	}
	o.remainingQuantity -= quantity
}

// ToGoodTillCancel rewrites a Market order into a marketable limit at
// price, so the matching loop's price-based comparisons apply uniformly.
// It is only legal before the order has been enqueued on the book — the
// matching engine calls it once, immediately after constructing or
// receiving a Market order.
func (o *Order) ToGoodTillCancel(price Price) {
	o.orderType = GoodTillCancel
	o.price = price
}
