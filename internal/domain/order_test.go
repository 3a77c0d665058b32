package domain

import "testing"

func TestOrder_FillReducesRemaining(t *testing.T) {
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 10)
	o.Fill(4)
	if got := o.RemainingQuantity(); got != 6 {
		t.Errorf("RemainingQuantity() = %d, want 6", got)
	}
	if got := o.FilledQuantity(); got != 4 {
		t.Errorf("FilledQuantity() = %d, want 4", got)
	}
	if o.IsFilled() {
		t.Error("IsFilled() = true, want false")
	}
}

func TestOrder_FillToZeroMarksFilled(t *testing.T) {
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 10)
	o.Fill(10)
	if !o.IsFilled() {
		t.Error("IsFilled() = false, want true after exact fill")
	}
	if got := o.RemainingQuantity(); got != 0 {
		t.Errorf("RemainingQuantity() = %d, want 0", got)
	}
}

func TestOrder_FillBeyondRemainingPanics(t *testing.T) {
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 10)
	o.Fill(6)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Fill() did not panic on overfill")
		}
		if _, ok := r.(*OverfillError); !ok {
			t.Errorf("recovered value is %T, want *OverfillError", r)
		}
	}()
	o.Fill(5) // only 4 remain
}

func TestOrder_ToGoodTillCancelRewritesMarketOrder(t *testing.T) {
	o := NewMarketOrder(7, Sell, 5)
	if o.OrderType() != Market {
		t.Fatalf("OrderType() = %v, want Market", o.OrderType())
	}
	o.ToGoodTillCancel(150)
	if o.OrderType() != GoodTillCancel {
		t.Errorf("OrderType() after rewrite = %v, want GoodTillCancel", o.OrderType())
	}
	if o.Price() != 150 {
		t.Errorf("Price() after rewrite = %d, want 150", o.Price())
	}
}

func TestOrder_AccessorsReflectConstruction(t *testing.T) {
	o := NewOrder(FillOrKill, 42, Sell, 99, 20)
	if o.OrderId() != 42 {
		t.Errorf("OrderId() = %d, want 42", o.OrderId())
	}
	if o.Side() != Sell {
		t.Errorf("Side() = %v, want Sell", o.Side())
	}
	if o.Price() != 99 {
		t.Errorf("Price() = %d, want 99", o.Price())
	}
	if o.InitialQuantity() != 20 || o.RemainingQuantity() != 20 {
		t.Errorf("quantities = (%d, %d), want (20, 20)", o.InitialQuantity(), o.RemainingQuantity())
	}
}
