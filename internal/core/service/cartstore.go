package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

var ErrNoShippingAddress = errors.New("shipping address is not set")

const submitFallbackMsg = "unexpected error, contact the administrator"

// A cartAction is one transition of the cart state machine.
type cartAction interface{ cartAction() }

type (
	loadCartAction       struct{ items []domain.CartLineItem }
	replaceItemsAction   struct{ items []domain.CartLineItem }
	changeQuantityAction struct{ item domain.CartLineItem }
	removeItemAction     struct{ item domain.CartLineItem }
	loadAddressAction    struct{ addr domain.ShippingAddress }
	updateAddressAction  struct{ addr domain.ShippingAddress }
	updateSummaryAction  struct{ summary cartSummary }
	orderCompleteAction  struct{}
)

func (loadCartAction) cartAction()       {}
func (replaceItemsAction) cartAction()   {}
func (changeQuantityAction) cartAction() {}
func (removeItemAction) cartAction()     {}
func (loadAddressAction) cartAction()    {}
func (updateAddressAction) cartAction()  {}
func (updateSummaryAction) cartAction()  {}
func (orderCompleteAction) cartAction()  {}

type cartSummary struct {
	itemCount int
	subtotal  float64
	tax       float64
	total     float64
}

// reduce is the pure transition function: state + action -> state.
// No side effects here; persistence and event emission happen in
// [CartStore.dispatch].
func reduce(s domain.CartState, a cartAction) domain.CartState {
	switch a := a.(type) {
	case loadCartAction:
		s.Loaded = true
		s.Items = cloneItems(a.items)

	case replaceItemsAction:
		s.Items = cloneItems(a.items)

	case changeQuantityAction:
		items := make([]domain.CartLineItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.SameLine(a.item) {
				it.Quantity = a.item.Quantity
			}
			items = append(items, it)
		}
		s.Items = items

	case removeItemAction:
		items := make([]domain.CartLineItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.SameLine(a.item) {
				continue
			}
			items = append(items, it)
		}
		s.Items = items

	case loadAddressAction:
		if s.ShippingAddress == nil {
			addr := a.addr
			s.ShippingAddress = &addr
		}

	case updateAddressAction:
		addr := a.addr
		s.ShippingAddress = &addr

	case updateSummaryAction:
		s.ItemCount = a.summary.itemCount
		s.Subtotal = a.summary.subtotal
		s.Tax = a.summary.tax
		s.Total = a.summary.total

	case orderCompleteAction:
		s.Items = nil
	}
	return s
}

// changesItems reports whether the action replaces the line-item
// sequence, which obliges the summary and mirror reactions.
func changesItems(a cartAction) bool {
	switch a.(type) {
	case loadCartAction, replaceItemsAction, changeQuantityAction,
		removeItemAction, orderCompleteAction:
		return true
	}
	return false
}

// A CartStore holds the canonical in-memory cart and exposes the
// action handlers. Single-writer: one store serves one request.
type CartStore struct {
	mirror  port.CartMirror
	events  port.CartEventsProducer
	taxRate float64
	state   domain.CartState
}

// NewCartStore constructs a store and synchronously hydrates it from
// the mirror. A malformed mirror payload hydrates as an empty cart.
// The events producer is optional.
func NewCartStore(
	mirror port.CartMirror, taxRate float64, events port.CartEventsProducer,
) *CartStore {
	s := &CartStore{mirror: mirror, taxRate: taxRate, events: events}
	s.hydrate()
	return s
}

func (s *CartStore) hydrate() {
	const op = "CartStore.hydrate"

	items, err := s.mirror.ReadCartItems()
	if err != nil {
		slog.Warn("failed to read mirrored cart, using empty",
			"op", op, "err", err)
		items = nil
	}
	s.dispatch(loadCartAction{items})

	if addr, ok := s.mirror.ReadShippingAddress(); ok {
		s.dispatch(loadAddressAction{addr})
	}
}

// dispatch runs the pure transition, then the reactions: any change of
// the item sequence recomputes the derived totals and mirrors the new
// sequence.
func (s *CartStore) dispatch(a cartAction) {
	s.state = reduce(s.state, a)
	if changesItems(a) {
		s.state = reduce(s.state, updateSummaryAction{s.summarize()})
		s.mirror.WriteCartItems(s.state.Items)
	}
}

func (s *CartStore) summarize() cartSummary {
	var sum cartSummary
	for _, it := range s.state.Items {
		sum.itemCount += it.Quantity
		sum.subtotal += it.Price * float64(it.Quantity)
	}
	sum.tax = sum.subtotal * s.taxRate
	sum.total = sum.subtotal * (1 + s.taxRate)
	return sum
}

// State returns a copy of the current cart state.
func (s *CartStore) State() domain.CartState {
	st := s.state
	st.Items = cloneItems(st.Items)
	if st.ShippingAddress != nil {
		addr := *st.ShippingAddress
		st.ShippingAddress = &addr
	}
	return st
}

// AddProduct merges the incoming item into an existing line with the
// same (ProductID, Size), or appends it as a new line. A single pass:
// the (ProductID, Size) uniqueness invariant guarantees at most one
// match.
func (s *CartStore) AddProduct(ctx context.Context, item domain.CartLineItem) {
	items := make([]domain.CartLineItem, 0, len(s.state.Items)+1)
	merged := false
	for _, it := range s.state.Items {
		if it.SameLine(item) {
			it.Quantity += item.Quantity
			merged = true
		}
		items = append(items, it)
	}
	if !merged {
		items = append(items, item)
	}
	s.dispatch(replaceItemsAction{items})

	s.produceEvent(ctx, domain.CartEvent{
		Type:      domain.CartEventProductAdded,
		ProductID: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
	})
}

// SetQuantity overwrites the quantity of the line matching the item's
// (ProductID, Size). No-op when no such line exists. A quantity of
// zero or less removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, item domain.CartLineItem) {
	if item.Quantity <= 0 {
		s.RemoveProduct(ctx, item)
		return
	}
	s.dispatch(changeQuantityAction{item})

	s.produceEvent(ctx, domain.CartEvent{
		Type:      domain.CartEventQuantityChange,
		ProductID: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
	})
}

// RemoveProduct deletes the line matching the item's (ProductID, Size).
// No-op when no such line exists.
func (s *CartStore) RemoveProduct(ctx context.Context, item domain.CartLineItem) {
	s.dispatch(removeItemAction{item})

	s.produceEvent(ctx, domain.CartEvent{
		Type:      domain.CartEventProductRemoved,
		ProductID: item.ProductID,
		Size:      item.Size,
	})
}

// UpdateAddress overwrites the shipping address and mirrors each field.
func (s *CartStore) UpdateAddress(addr domain.ShippingAddress) {
	s.mirror.WriteShippingAddress(addr)
	s.dispatch(updateAddressAction{addr})
}

// Submit builds an order snapshot from the current state and places it
// through the gateway. The missing-address precondition is the only
// error returned; every expected failure mode comes back as a tagged
// [domain.SubmitResult].
func (s *CartStore) Submit(
	ctx context.Context, placer port.OrderPlacer,
) (domain.SubmitResult, error) {
	const op = "CartStore.Submit"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.SubmitResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.state.ShippingAddress == nil {
		return domain.SubmitResult{}, fmt.Errorf("%s: %w", op, ErrNoShippingAddress)
	}

	orderID, err := placer.PlaceOrder(ctx, s.buildOrder())
	if err != nil {
		var terr *port.TransportError
		if errors.As(err, &terr) {
			return domain.SubmitResult{HasError: true, Message: terr.Err.Error()}, nil
		}
		log.Error("failed to place order", "err", err)
		return domain.SubmitResult{HasError: true, Message: submitFallbackMsg}, nil
	}

	s.dispatch(orderCompleteAction{})

	s.produceEvent(ctx, domain.CartEvent{
		Type:    domain.CartEventOrderSubmitted,
		OrderID: orderID,
	})

	return domain.SubmitResult{HasError: false, Message: orderID}, nil
}

func (s *CartStore) buildOrder() domain.Order {
	const op = "CartStore.buildOrder"

	for _, it := range s.state.Items {
		if it.Size == "" {
			panic(fmt.Errorf("%s: line %q has no size", op, it.ProductID)) // develop mistake
		}
	}

	return domain.Order{
		Items:           cloneItems(s.state.Items),
		ShippingAddress: *s.state.ShippingAddress,
		ItemCount:       s.state.ItemCount,
		Subtotal:        s.state.Subtotal,
		Tax:             s.state.Tax,
		Total:           s.state.Total,
		IsPaid:          false,
	}
}

func (s *CartStore) produceEvent(ctx context.Context, evt domain.CartEvent) {
	const op = "CartStore.produceEvent"

	if s.events == nil {
		return
	}
	if err := s.events.ProduceCartEvent(ctx, evt); err != nil {
		slog.Error("failed to produce cart event",
			"op", op, "type", evt.Type, "err", err)
	}
}

func cloneItems(items []domain.CartLineItem) []domain.CartLineItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CartLineItem, len(items))
	copy(out, items)
	return out
}
