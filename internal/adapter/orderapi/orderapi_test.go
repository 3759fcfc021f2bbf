package orderapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslo-shop/storefront/internal/adapter/orderapi"
	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

func testOrder() domain.Order {
	return domain.Order{
		Items: []domain.CartLineItem{
			{ProductID: "A", Size: "M", Price: 10, Quantity: 2, Title: "Tee A"},
		},
		ShippingAddress: domain.ShippingAddress{FirstName: "Fernando"},
		ItemCount:       2,
		Subtotal:        20,
		Tax:             3,
		Total:           23,
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"_id": "ORD123"}`))
			}))
		defer srv.Close()

		gateway := orderapi.NewOrderGateway(srv.URL)
		orderID, err := gateway.PlaceOrder(t.Context(), testOrder())

		require.NoError(t, err)
		assert.Equal(t, "ORD123", orderID)
		assert.Equal(t, "/orders", gotPath)
		assert.Equal(t, false, gotBody["isPaid"])
		assert.InDelta(t, 23, gotBody["total"].(float64), 1e-9)
	})

	t.Run("HTTPErrorIsTransport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
		defer srv.Close()

		gateway := orderapi.NewOrderGateway(srv.URL)
		_, err := gateway.PlaceOrder(t.Context(), testOrder())

		require.Error(t, err)
		var terr *port.TransportError
		require.ErrorAs(t, err, &terr)
		assert.Contains(t, terr.Err.Error(), "500")
	})

	t.Run("ConnectionFailureIsTransport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		gateway := orderapi.NewOrderGateway(srv.URL)
		_, err := gateway.PlaceOrder(t.Context(), testOrder())

		require.Error(t, err)
		var terr *port.TransportError
		assert.ErrorAs(t, err, &terr)
	})

	t.Run("MalformedResponseIsNotTransport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			}))
		defer srv.Close()

		gateway := orderapi.NewOrderGateway(srv.URL)
		_, err := gateway.PlaceOrder(t.Context(), testOrder())

		require.Error(t, err)
		var terr *port.TransportError
		assert.NotErrorAs(t, err, &terr)
	})

	t.Run("MissingOrderIDIsError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			}))
		defer srv.Close()

		gateway := orderapi.NewOrderGateway(srv.URL)
		_, err := gateway.PlaceOrder(t.Context(), testOrder())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no order id")
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		gateway := orderapi.NewOrderGateway(srv.URL)
		_, err := gateway.PlaceOrder(ctx, testOrder())

		require.Error(t, err)
	})
}
