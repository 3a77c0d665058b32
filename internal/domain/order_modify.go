package domain

// OrderModify is an amendment descriptor: cancel the order at OrderId,
// then add a replacement carrying the same id and type but the given
// side/price/quantity. It does not carry OrderType — the type of the
// order being replaced is read from the existing order at modify time.
type OrderModify struct {
	orderId  OrderId
	side     Side
	price    Price
	quantity Quantity
}

// NewOrderModify builds an amendment descriptor.
func NewOrderModify(orderId OrderId, side Side, price Price, quantity Quantity) OrderModify {
	return OrderModify{orderId: orderId, side: side, price: price, quantity: quantity}
}

func (m OrderModify) OrderId() OrderId   { return m.orderId }
func (m OrderModify) Side() Side         { return m.side }
func (m OrderModify) Price() Price       { return m.price }
func (m OrderModify) Quantity() Quantity { return m.quantity }

// ToOrder builds the replacement Order carrying orderType — the type of
// the order being replaced, looked up by the caller before cancelling it.
func (m OrderModify) ToOrder(orderType OrderType) *Order {
	return NewOrder(orderType, m.orderId, m.side, m.price, m.quantity)
}
