package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ekholm/matchcore/internal/domain"
	"github.com/ekholm/matchcore/internal/engine"
	"github.com/go-chi/chi/v5"
)

// BookHandler exposes an engine.Book as a thin HTTP demo front end. THE
// CORE's invariants are all enforced by engine.Book itself; this layer
// only does request parsing and response shaping.
type BookHandler struct {
	book *engine.Book
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(book *engine.Book) *BookHandler {
	return &BookHandler{book: book}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	OrderID  uint64 `json:"order_id"`
	Type     string `json:"type"`
	Side     string `json:"side"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

type tradeLegResponse struct {
	OrderID  uint64 `json:"order_id"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

type tradeResponse struct {
	Bid tradeLegResponse `json:"bid"`
	Ask tradeLegResponse `json:"ask"`
}

type submitOrderResponse struct {
	Trades []tradeResponse `json:"trades"`
}

var orderTypesByName = map[string]domain.OrderType{
	"good_till_cancel": domain.GoodTillCancel,
	"good_for_day":     domain.GoodForDay,
	"fill_and_kill":    domain.FillAndKill,
	"fill_or_kill":     domain.FillOrKill,
	"market":           domain.Market,
}

var sidesByName = map[string]domain.Side{
	"buy":  domain.Buy,
	"sell": domain.Sell,
}

func buildTradesResponse(trades domain.Trades) submitOrderResponse {
	resp := submitOrderResponse{Trades: make([]tradeResponse, 0, len(trades))}
	for _, t := range trades {
		resp.Trades = append(resp.Trades, tradeResponse{
			Bid: tradeLegResponse{OrderID: uint64(t.Bid.OrderId), Price: int32(t.Bid.Price), Quantity: uint32(t.Bid.Quantity)},
			Ask: tradeLegResponse{OrderID: uint64(t.Ask.OrderId), Price: int32(t.Ask.Price), Quantity: uint32(t.Ask.Quantity)},
		})
	}
	return resp
}

// SubmitOrder handles POST /orders.
func (h *BookHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	orderType, ok := orderTypesByName[req.Type]
	if !ok {
		WriteError(w, http.StatusBadRequest, "validation_error", "type must be one of: good_till_cancel, good_for_day, fill_and_kill, fill_or_kill, market")
		return
	}
	side, ok := sidesByName[req.Side]
	if !ok {
		WriteError(w, http.StatusBadRequest, "validation_error", "side must be one of: buy, sell")
		return
	}
	if req.Quantity == 0 {
		WriteError(w, http.StatusBadRequest, "validation_error", "quantity must be greater than zero")
		return
	}

	var order *domain.Order
	if orderType == domain.Market {
		order = domain.NewMarketOrder(domain.OrderId(req.OrderID), side, domain.Quantity(req.Quantity))
	} else {
		order = domain.NewOrder(orderType, domain.OrderId(req.OrderID), side, domain.Price(req.Price), domain.Quantity(req.Quantity))
	}

	trades := h.book.AddOrder(order)
	WriteJSON(w, http.StatusCreated, buildTradesResponse(trades))
}

// CancelOrder handles DELETE /orders/{order_id}. Cancelling an unknown id
// is a no-op at the engine level, so this always reports success.
func (h *BookHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.book.CancelOrder(id)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// modifyOrderRequest is the JSON request body for PATCH /orders/{order_id}.
type modifyOrderRequest struct {
	Side     string `json:"side"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

// ModifyOrder handles PATCH /orders/{order_id}: cancel+replace, carrying
// forward the existing order's type. An unknown id yields no trades.
func (h *BookHandler) ModifyOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req modifyOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	side, ok := sidesByName[req.Side]
	if !ok {
		WriteError(w, http.StatusBadRequest, "validation_error", "side must be one of: buy, sell")
		return
	}
	if req.Quantity == 0 {
		WriteError(w, http.StatusBadRequest, "validation_error", "quantity must be greater than zero")
		return
	}

	modify := domain.NewOrderModify(id, side, domain.Price(req.Price), domain.Quantity(req.Quantity))
	trades := h.book.ModifyOrder(modify)
	WriteJSON(w, http.StatusOK, buildTradesResponse(trades))
}

type levelInfoResponse struct {
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

type bookSnapshotResponse struct {
	Bids []levelInfoResponse `json:"bids"`
	Asks []levelInfoResponse `json:"asks"`
}

// GetBook handles GET /book: a snapshot of resting aggregate quantity per
// price level, bids highest first, asks lowest first.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	infos := h.book.GetOrderInfos()

	resp := bookSnapshotResponse{
		Bids: make([]levelInfoResponse, len(infos.Bids)),
		Asks: make([]levelInfoResponse, len(infos.Asks)),
	}
	for i, l := range infos.Bids {
		resp.Bids[i] = levelInfoResponse{Price: int32(l.Price), Quantity: uint32(l.Quantity)}
	}
	for i, l := range infos.Asks {
		resp.Asks[i] = levelInfoResponse{Price: int32(l.Price), Quantity: uint32(l.Quantity)}
	}
	WriteJSON(w, http.StatusOK, resp)
}

var errInvalidOrderID = errors.New("order_id must be a non-negative integer")

func parseOrderID(r *http.Request) (domain.OrderId, error) {
	raw := chi.URLParam(r, "order_id")
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errInvalidOrderID
	}
	return domain.OrderId(v), nil
}
