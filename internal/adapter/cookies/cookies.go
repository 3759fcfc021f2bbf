// Package cookies implements the persistent key-value mirror over the
// request/response cookie pair: the cart under the "cart" key as a
// JSON array, the shipping address as one plain-string cookie per
// field. Pure storage, no logic.
package cookies

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
)

const (
	cartKey      = "cart"
	firstNameKey = "firstName"
	lastNameKey  = "lastName"
	addressKey   = "address"
	address2Key  = "address2"
	zipKey       = "zip"
	cityKey      = "city"
	countryKey   = "country"
	phoneKey     = "phone"
)

const maxAge = int(30 * 24 * time.Hour / time.Second)

var _ port.CartMirror = (*Mirror)(nil)

// A cartItem is the wire shape of one mirrored cart line.
type cartItem struct {
	ID       string  `json:"_id"`
	Size     string  `json:"size"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	InStock  int     `json:"inStock"`
}

type Mirror struct {
	w http.ResponseWriter
	r *http.Request
}

func NewMirror(w http.ResponseWriter, r *http.Request) Mirror {
	return Mirror{w, r}
}

// ReadCartItems parses the "cart" cookie. An absent cookie is an empty
// cart; a malformed one is an error for the caller to downgrade.
func (m Mirror) ReadCartItems() ([]domain.CartLineItem, error) {
	const op = "Mirror.ReadCartItems"

	raw, ok := m.get(cartKey)
	if !ok {
		return nil, nil
	}

	var vs []cartItem
	if err := json.Unmarshal([]byte(raw), &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.CartLineItem, 0, len(vs))
	for _, v := range vs {
		items = append(items, domain.CartLineItem{
			ProductID: v.ID,
			Size:      v.Size,
			Price:     v.Price,
			Quantity:  v.Quantity,
			Title:     v.Title,
			Image:     v.Image,
			MaxStock:  v.InStock,
		})
	}
	return items, nil
}

func (m Mirror) WriteCartItems(items []domain.CartLineItem) {
	vs := make([]cartItem, 0, len(items))
	for _, it := range items {
		vs = append(vs, cartItem{
			ID:       it.ProductID,
			Size:     it.Size,
			Price:    it.Price,
			Quantity: it.Quantity,
			Title:    it.Title,
			Image:    it.Image,
			InStock:  it.MaxStock,
		})
	}
	b, _ := json.Marshal(vs)
	m.set(cartKey, string(b))
}

// ReadShippingAddress reports ok only when the firstName key is
// present, mirroring how the address hydration is gated.
func (m Mirror) ReadShippingAddress() (domain.ShippingAddress, bool) {
	if _, ok := m.get(firstNameKey); !ok {
		return domain.ShippingAddress{}, false
	}

	addr := domain.ShippingAddress{
		FirstName: m.getOrEmpty(firstNameKey),
		LastName:  m.getOrEmpty(lastNameKey),
		Address:   m.getOrEmpty(addressKey),
		Address2:  m.getOrEmpty(address2Key),
		Zip:       m.getOrEmpty(zipKey),
		City:      m.getOrEmpty(cityKey),
		Country:   m.getOrEmpty(countryKey),
		Phone:     m.getOrEmpty(phoneKey),
	}
	return addr, true
}

func (m Mirror) WriteShippingAddress(addr domain.ShippingAddress) {
	m.set(firstNameKey, addr.FirstName)
	m.set(lastNameKey, addr.LastName)
	m.set(addressKey, addr.Address)
	m.set(address2Key, addr.Address2)
	m.set(zipKey, addr.Zip)
	m.set(cityKey, addr.City)
	m.set(countryKey, addr.Country)
	m.set(phoneKey, addr.Phone)
}

func (m Mirror) get(name string) (string, bool) {
	c, err := m.r.Cookie(name)
	if err != nil {
		return "", false
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value, true
	}
	return v, true
}

func (m Mirror) getOrEmpty(name string) string {
	v, _ := m.get(name)
	return v
}

func (m Mirror) set(name, value string) {
	http.SetCookie(m.w, &http.Cookie{
		Name:   name,
		Value:  url.QueryEscape(value),
		Path:   "/",
		MaxAge: maxAge,
	})
}
