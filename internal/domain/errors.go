package domain

import "fmt"

// ErrOrderNotFound reports an operation that references an unknown order
// id. Neither the engine nor the HTTP front end (package handler) returns
// it: CancelOrder/ModifyOrder on an unknown id are silent no-ops, per the
// matching core's error handling policy, and the handler reports them as
// success.
var ErrOrderNotFound = fmt.Errorf("order not found")

// OverfillError is an internal invariant violation: Order.Fill was asked to
// remove more than remains. It can only be raised by a matcher bug, since
// the matching loop always computes fill quantity as
// min(remainingBid, remainingAsk). It is never recovered from inside the
// engine; Order.Fill panics with it and lets the panic propagate.
type OverfillError struct {
	OrderId   OrderId
	Requested Quantity
	Remaining Quantity
}

func (e *OverfillError) Error() string {
	return fmt.Sprintf("order %d: cannot fill %d, only %d remaining", e.OrderId, e.Requested, e.Remaining)
}
