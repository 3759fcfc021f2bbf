package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/service"
)

type MockEventsProducer struct {
	mock.Mock
}

func (m *MockEventsProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func TestCartStoreEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("AddProductEmitsEvent", func(t *testing.T) {
		events := new(MockEventsProducer)
		events.On("ProduceCartEvent", ctx, domain.CartEvent{
			Type:      domain.CartEventProductAdded,
			ProductID: "A",
			Size:      "M",
			Quantity:  2,
		}).Return(nil)

		store := service.NewCartStore(&memMirror{}, 0, events)
		store.AddProduct(ctx, lineItem("A", "M", 10, 2))

		events.AssertExpectations(t)
	})

	t.Run("ProduceFailureDoesNotSurface", func(t *testing.T) {
		events := new(MockEventsProducer)
		events.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		store := service.NewCartStore(&memMirror{}, 0, events)

		require.NotPanics(t, func() {
			store.AddProduct(ctx, lineItem("A", "M", 10, 1))
		})
		require.Len(t, store.State().Items, 1)
	})

	t.Run("SubmitEmitsOrderEvent", func(t *testing.T) {
		events := new(MockEventsProducer)
		events.On("ProduceCartEvent", mock.Anything, mock.Anything).Return(nil)

		store := service.NewCartStore(&memMirror{}, 0, events)
		store.AddProduct(ctx, lineItem("A", "M", 10, 1))
		store.UpdateAddress(testAddress())

		_, err := store.Submit(ctx, &stubPlacer{orderID: "ORD123"})
		require.NoError(t, err)

		events.AssertCalled(t, "ProduceCartEvent", ctx, domain.CartEvent{
			Type:    domain.CartEventOrderSubmitted,
			OrderID: "ORD123",
		})
	})
}
