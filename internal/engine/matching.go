package engine

import (
	"log/slog"

	"github.com/ekholm/matchcore/internal/domain"
)

// addOrderLocked implements the AddOrder admission policy. Caller must
// hold the write lock.
//
//  1. Reject silently if the OrderId is already present (idempotent).
//  2. Market: rewrite to a marketable limit at the worst opposite price
//     currently on the book; reject silently if the opposite side is
//     empty.
//  3. FillAndKill: reject silently if there's no matching liquidity at
//     the given price (never enqueued).
//  4. FillOrKill: reject silently if the book can't fully fill the
//     initial quantity at acceptable prices.
//  5. Otherwise enqueue and run the matching loop.
func (b *Book) addOrderLocked(order *domain.Order) domain.Trades {
	if _, exists := b.index[order.OrderId()]; exists {
		b.logger.Debug("add rejected: duplicate order id", slog.Uint64("order_id", uint64(order.OrderId())))
		return nil
	}

	if order.OrderType() == domain.Market {
		opposite := b.sideBookFor(oppositeSide(order.Side()))
		worst, ok := opposite.worst()
		if !ok {
			b.logger.Debug("add rejected: market order with no opposite liquidity",
				slog.Uint64("order_id", uint64(order.OrderId())))
			return nil
		}
		order.ToGoodTillCancel(worst.price)
	}

	if order.OrderType() == domain.FillAndKill && !b.canMatch(order.Side(), order.Price()) {
		b.logger.Debug("add rejected: unsatisfiable FillAndKill", slog.Uint64("order_id", uint64(order.OrderId())))
		return nil
	}

	if order.OrderType() == domain.FillOrKill && !b.canFullyFill(order.Side(), order.Price(), order.InitialQuantity()) {
		b.logger.Debug("add rejected: unsatisfiable FillOrKill", slog.Uint64("order_id", uint64(order.OrderId())))
		return nil
	}

	b.enqueueNew(order)
	return b.matchOrders()
}

func oppositeSide(side domain.Side) domain.Side {
	if side == domain.Buy {
		return domain.Sell
	}
	return domain.Buy
}

// canMatch reports whether price on side currently crosses the opposite
// book: for a buy, the best ask must be at or below price; for a sell,
// the best bid must be at or above price.
func (b *Book) canMatch(side domain.Side, price domain.Price) bool {
	if side == domain.Buy {
		level, ok := b.asks.best()
		if !ok {
			return false
		}
		return price >= level.price
	}
	level, ok := b.bids.best()
	if !ok {
		return false
	}
	return price <= level.price
}

// canFullyFill answers the fill-or-kill feasibility question: can
// required quantity be filled entirely at prices acceptable to side/price
// using only the opposite book? It walks the level-data index — O(#levels)
// rather than O(#orders) — accumulating quantity across eligible levels
// until required is satisfied or the levels run out.
func (b *Book) canFullyFill(side domain.Side, price domain.Price, required domain.Quantity) bool {
	if !b.canMatch(side, price) {
		return false
	}

	var threshold domain.Price
	if side == domain.Buy {
		askLevel, _ := b.asks.best()
		threshold = askLevel.price
	} else {
		bidLevel, _ := b.bids.best()
		threshold = bidLevel.price
	}

	remaining := required
	for levelPrice, ld := range b.levelData {
		if side == domain.Buy {
			if levelPrice < threshold { // a bid-side price, not part of the opposite book
				continue
			}
			if levelPrice > price { // worse than the incoming limit
				continue
			}
		} else {
			if levelPrice > threshold { // an ask-side price, not part of the opposite book
				continue
			}
			if levelPrice < price { // worse than the incoming limit
				continue
			}
		}

		if remaining <= ld.quantity {
			return true
		}
		remaining -= ld.quantity
	}
	return false
}

// matchOrders drains every cross between the best bid and the best ask,
// filling at min(remainingBid, remainingAsk), emitting one Trade per
// match with each leg's own resting price (never a midpoint), and
// removing any order whose remaining quantity reaches zero. It finishes
// with the residual-FillAndKill sweep: a FAK that partially filled and
// would otherwise rest is cancelled instead. Caller must hold the write
// lock.
func (b *Book) matchOrders() domain.Trades {
	var trades domain.Trades

	for {
		bidLevel, okBid := b.bids.best()
		askLevel, okAsk := b.asks.best()
		if !okBid || !okAsk {
			break
		}
		if bidLevel.price < askLevel.price {
			break
		}

		bidOrder := bidLevel.front()
		askOrder := askLevel.front()

		qty := bidOrder.RemainingQuantity()
		if askOrder.RemainingQuantity() < qty {
			qty = askOrder.RemainingQuantity()
		}

		bidOrder.Fill(qty)
		askOrder.Fill(qty)
		b.partialFill(bidLevel.price, qty)
		b.partialFill(askLevel.price, qty)

		if bidOrder.IsFilled() {
			b.dequeue(bidOrder.OrderId())
		}
		if askOrder.IsFilled() {
			b.dequeue(askOrder.OrderId())
		}

		trades = append(trades, domain.Trade{
			Bid: domain.TradeInfo{OrderId: bidOrder.OrderId(), Price: bidOrder.Price(), Quantity: qty},
			Ask: domain.TradeInfo{OrderId: askOrder.OrderId(), Price: askOrder.Price(), Quantity: qty},
		})
	}

	if level, ok := b.bids.best(); ok {
		if order := level.front(); order.OrderType() == domain.FillAndKill {
			b.dequeue(order.OrderId())
		}
	}
	if level, ok := b.asks.best(); ok {
		if order := level.front(); order.OrderType() == domain.FillAndKill {
			b.dequeue(order.OrderId())
		}
	}

	return trades
}
