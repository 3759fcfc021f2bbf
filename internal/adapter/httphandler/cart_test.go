package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslo-shop/storefront/internal/adapter/cookies"
	"github.com/teslo-shop/storefront/internal/adapter/httphandler"
	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

type stubPlacer struct {
	orderID string
	err     error
	calls   int
}

func (p *stubPlacer) PlaceOrder(
	_ context.Context, _ domain.Order,
) (string, error) {
	p.calls++
	return p.orderID, p.err
}

// session replays cookies across requests like a browser, accumulating
// every Set-Cookie the handlers emit.
type session struct {
	mux *http.ServeMux
	jar map[string]string
}

func newCartSession(placer port.OrderPlacer) *session {
	mirror := func(w http.ResponseWriter, r *http.Request) port.CartMirror {
		return cookies.NewMirror(w, r)
	}
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, mirror, 0.15, nil, placer)
	return &session{mux: mux, jar: make(map[string]string)}
}

func (s *session) do(
	t *testing.T, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range s.jar {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		s.jar[c.Name] = c.Value
	}
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) httphandler.Cart {
	t.Helper()
	var c httphandler.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	return c
}

func TestCartEndpoints(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		s := newCartSession(&stubPlacer{})

		rec := s.do(t, http.MethodGet, "/v1/cart", "")

		require.Equal(t, http.StatusOK, rec.Code)
		c := decodeCart(t, rec)
		assert.True(t, c.IsLoaded)
		assert.Empty(t, c.Cart)
	})

	t.Run("AddItemPersistsAcrossRequests", func(t *testing.T) {
		s := newCartSession(&stubPlacer{})

		rec := s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "size": "M", "price": 10, "quantity": 2, "title": "Tee"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		c := decodeCart(t, rec)
		require.Len(t, c.Cart, 1)
		assert.Equal(t, 2, c.NumberOfItems)
		assert.InDelta(t, 20, c.SubTotal, 1e-9)
		assert.InDelta(t, 23, c.Total, 1e-9)

		rec = s.do(t, http.MethodGet, "/v1/cart", "")
		c = decodeCart(t, rec)
		require.Len(t, c.Cart, 1)
		assert.Equal(t, "A", c.Cart[0].ID)
		assert.Equal(t, 2, c.Cart[0].Quantity)
	})

	t.Run("AddItemWithoutSizeIsBadRequest", func(t *testing.T) {
		s := newCartSession(&stubPlacer{})

		rec := s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "price": 10, "quantity": 1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SetQuantityToZeroRemovesLine", func(t *testing.T) {
		s := newCartSession(&stubPlacer{})

		s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "size": "M", "price": 10, "quantity": 2}`)
		rec := s.do(t, http.MethodPut, "/v1/cart/items",
			`{"_id": "A", "size": "M", "quantity": 0}`)

		c := decodeCart(t, rec)
		assert.Empty(t, c.Cart)
	})

	t.Run("RemoveItem", func(t *testing.T) {
		s := newCartSession(&stubPlacer{})

		s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "size": "M", "price": 10, "quantity": 2}`)
		rec := s.do(t, http.MethodDelete, "/v1/cart/items",
			`{"_id": "A", "size": "M"}`)

		c := decodeCart(t, rec)
		assert.Empty(t, c.Cart)
		assert.Zero(t, c.NumberOfItems)
	})

	t.Run("SubmitWithoutAddress", func(t *testing.T) {
		placer := &stubPlacer{orderID: "ORD123"}
		s := newCartSession(placer)

		s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "size": "M", "price": 10, "quantity": 1}`)
		rec := s.do(t, http.MethodPost, "/v1/orders", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, placer.calls)
	})

	t.Run("SubmitSuccess", func(t *testing.T) {
		placer := &stubPlacer{orderID: "ORD123"}
		s := newCartSession(placer)

		s.do(t, http.MethodPost, "/v1/cart/items",
			`{"_id": "A", "size": "M", "price": 10, "quantity": 1}`)
		s.do(t, http.MethodPut, "/v1/cart/address",
			`{"firstName": "Fernando", "lastName": "Herrera", "address": "Av. 1",
			  "zip": "12345", "city": "Springfield", "country": "MEX",
			  "phone": "5550001111"}`)
		rec := s.do(t, http.MethodPost, "/v1/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res httphandler.SubmitResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.False(t, res.HasError)
		assert.Equal(t, "ORD123", res.Message)
		assert.Equal(t, 1, placer.calls)

		rec = s.do(t, http.MethodGet, "/v1/cart", "")
		c := decodeCart(t, rec)
		assert.Empty(t, c.Cart)
		require.NotNil(t, c.ShippingAddress)
		assert.Equal(t, "Fernando", c.ShippingAddress.FirstName)
	})
}
