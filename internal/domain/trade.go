package domain

// TradeInfo is one leg of a Trade: the order that took part, and the price
// and quantity at which it executed.
type TradeInfo struct {
	OrderId  OrderId
	Price    Price
	Quantity Quantity
}

// Trade pairs the bid leg and the ask leg of one match. Once constructed a
// Trade is immutable.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

// Trades is the chronologically ordered vector of trades a single Add call
// formed.
type Trades []Trade
