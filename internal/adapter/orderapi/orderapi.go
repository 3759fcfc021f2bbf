// Package orderapi is the outbound gateway to the backend
// order-creation endpoint.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

const requestTimeout = 10 * time.Second

var _ port.OrderPlacer = (*OrderGateway)(nil)

type (
	orderItem struct {
		ID       string  `json:"_id"`
		Title    string  `json:"title"`
		Size     string  `json:"size"`
		Quantity int     `json:"quantity"`
		Image    string  `json:"image"`
		Price    float64 `json:"price"`
	}

	shippingAddress struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
		Address2  string `json:"address2"`
		Zip       string `json:"zip"`
		City      string `json:"city"`
		Country   string `json:"country"`
		Phone     string `json:"phone"`
	}

	orderBody struct {
		OrderItems      []orderItem     `json:"orderItems"`
		ShippingAddress shippingAddress `json:"shippingAddress"`
		NumberOfItems   int             `json:"numberOfItems"`
		SubTotal        float64         `json:"subTotal"`
		Tax             float64         `json:"tax"`
		Total           float64         `json:"total"`
		IsPaid          bool            `json:"isPaid"`
	}

	orderResponse struct {
		ID string `json:"_id"`
	}
)

type OrderGateway struct {
	cl      *http.Client
	baseURL string
}

func NewOrderGateway(baseURL string) OrderGateway {
	cl := &http.Client{Timeout: requestTimeout}
	return OrderGateway{cl, strings.TrimRight(baseURL, "/")}
}

// PlaceOrder posts the order snapshot and returns the backend-assigned
// identifier. Network and HTTP-level failures come back as
// [port.TransportError]; anything else is unclassified.
func (g OrderGateway) PlaceOrder(
	ctx context.Context, order domain.Order,
) (string, error) {
	const op = "OrderGateway.PlaceOrder"

	body, err := json.Marshal(g.toBody(order))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.cl.Do(req)
	if err != nil {
		return "", &port.TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("request failed with status code %d", res.StatusCode)
		return "", &port.TransportError{Err: err}
	}

	var v orderResponse
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if v.ID == "" {
		return "", fmt.Errorf("%s: response has no order id", op)
	}
	return v.ID, nil
}

func (OrderGateway) toBody(order domain.Order) orderBody {
	b := orderBody{
		ShippingAddress: shippingAddress{
			FirstName: order.ShippingAddress.FirstName,
			LastName:  order.ShippingAddress.LastName,
			Address:   order.ShippingAddress.Address,
			Address2:  order.ShippingAddress.Address2,
			Zip:       order.ShippingAddress.Zip,
			City:      order.ShippingAddress.City,
			Country:   order.ShippingAddress.Country,
			Phone:     order.ShippingAddress.Phone,
		},
		NumberOfItems: order.ItemCount,
		SubTotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		IsPaid:        order.IsPaid,
	}

	b.OrderItems = make([]orderItem, len(order.Items))
	for i, it := range order.Items {
		b.OrderItems[i] = orderItem{
			ID:       it.ProductID,
			Title:    it.Title,
			Size:     it.Size,
			Quantity: it.Quantity,
			Image:    it.Image,
			Price:    it.Price,
		}
	}
	return b
}
