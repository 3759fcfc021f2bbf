package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/teslo-shop/storefront/internal/core/domain"
)

var ErrNotFound = errors.New("product not found")

// A CartMirror durably mirrors cart contents and the shipping address
// across requests. Reads happen once at store hydration; writes follow
// every item change and explicit address updates.
type CartMirror interface {
	ReadCartItems() ([]domain.CartLineItem, error)
	WriteCartItems([]domain.CartLineItem)
	ReadShippingAddress() (domain.ShippingAddress, bool)
	WriteShippingAddress(domain.ShippingAddress)
}

type OrderPlacer interface {
	PlaceOrder(context.Context, domain.Order) (orderID string, err error)
}

// A TransportError marks an order-submission failure at the network or
// HTTP level, whose message is safe to show to the shopper.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type ProductsReader interface {
	ProductBySlug(context.Context, string) (domain.Product, error)
	ProductSlugs(context.Context) ([]string, error)
	ProductsByTerm(context.Context, string) ([]domain.ProductSummary, error)
	AllProducts(context.Context) ([]domain.Product, error)
}

// A CatalogProvider is the inbound-facing catalog surface: the reads of
// ProductsReader with image references normalized to absolute URLs.
type CatalogProvider interface {
	ProductBySlug(context.Context, string) (domain.Product, error)
	ProductSlugs(context.Context) ([]string, error)
	ProductsByTerm(context.Context, string) ([]domain.ProductSummary, error)
	AllProducts(context.Context) ([]domain.Product, error)
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}
