package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/teslo-shop/storefront/internal/core/port"
	"github.com/teslo-shop/storefront/internal/core/service"
)

// A MirrorFactory binds a persistent mirror to one request/response
// pair. Wired with the cookies adapter by the app.
type MirrorFactory func(http.ResponseWriter, *http.Request) port.CartMirror

// GET    /v1/cart               current cart state (hydrated from the mirror)
// POST   /v1/cart/items         add product (merge-or-append upsert)
// PUT    /v1/cart/items         set line quantity (0 removes the line)
// DELETE /v1/cart/items         remove line
// PUT    /v1/cart/address       set shipping address
// POST   /v1/orders             submit order

type CartHandler struct {
	mirror  MirrorFactory
	taxRate float64
	events  port.CartEventsProducer
	placer  port.OrderPlacer
}

func RegisterCart(
	mux *http.ServeMux,
	mirror MirrorFactory,
	taxRate float64,
	events port.CartEventsProducer,
	placer port.OrderPlacer,
) {
	h := CartHandler{mirror, taxRate, events, placer}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /v1/cart/items", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart/items", h.RemoveItem)
	mux.HandleFunc("PUT /v1/cart/address", h.PutAddress)
	mux.HandleFunc("POST /v1/orders", h.SubmitOrder)
}

func (h CartHandler) store(
	w http.ResponseWriter, r *http.Request,
) *service.CartStore {
	return service.NewCartStore(h.mirror(w, r), h.taxRate, h.events)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	writeJSON(w, http.StatusOK, toCart(store.State()))
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var v CartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if v.ID == "" || v.Size == "" || v.Quantity < 1 {
		http.Error(w, "product id, size and quantity are required",
			http.StatusBadRequest)
		return
	}

	store := h.store(w, r)
	store.AddProduct(r.Context(), v.toDomain())
	writeJSON(w, http.StatusOK, toCart(store.State()))
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	var v CartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if v.ID == "" {
		http.Error(w, "product id is required", http.StatusBadRequest)
		return
	}

	store := h.store(w, r)
	store.SetQuantity(r.Context(), v.toDomain())
	writeJSON(w, http.StatusOK, toCart(store.State()))
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	var v CartItem
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	store := h.store(w, r)
	store.RemoveProduct(r.Context(), v.toDomain())
	writeJSON(w, http.StatusOK, toCart(store.State()))
}

func (h CartHandler) PutAddress(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutAddress"
	log := slog.With("op", op)

	var v ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	store := h.store(w, r)
	store.UpdateAddress(v.toDomain())
	writeJSON(w, http.StatusOK, toCart(store.State()))
}

func (h CartHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SubmitOrder"
	log := slog.With("op", op)

	store := h.store(w, r)

	res, err := store.Submit(r.Context(), h.placer)
	if err != nil {
		if errors.Is(err, service.ErrNoShippingAddress) {
			http.Error(w, "shipping address is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to submit order", http.StatusInternalServerError)
		log.Error("failed to submit order", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, SubmitResult{
		HasError: res.HasError,
		Message:  res.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
