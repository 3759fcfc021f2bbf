package httphandler

import "github.com/teslo-shop/storefront/internal/core/domain"

type (
	CartItem struct {
		ID       string  `json:"_id"`
		Size     string  `json:"size"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Title    string  `json:"title"`
		Image    string  `json:"image"`
		InStock  int     `json:"inStock"`
	}

	ShippingAddress struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
		Address2  string `json:"address2"`
		Zip       string `json:"zip"`
		City      string `json:"city"`
		Country   string `json:"country"`
		Phone     string `json:"phone"`
	}

	Cart struct {
		IsLoaded        bool             `json:"isLoaded"`
		Cart            []CartItem       `json:"cart"`
		NumberOfItems   int              `json:"numberOfItems"`
		SubTotal        float64          `json:"subTotal"`
		Tax             float64          `json:"tax"`
		Total           float64          `json:"total"`
		ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	}

	SubmitResult struct {
		HasError bool   `json:"hasError"`
		Message  string `json:"message"`
	}
)

type (
	Product struct {
		Slug        string   `json:"slug"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		InStock     int      `json:"inStock"`
		Sizes       []string `json:"sizes"`
		Tags        []string `json:"tags"`
		Type        string   `json:"type"`
		Gender      string   `json:"gender"`
		Images      []string `json:"images"`
	}

	ProductSummary struct {
		Slug    string   `json:"slug"`
		Title   string   `json:"title"`
		Price   float64  `json:"price"`
		InStock bool     `json:"inStock"`
		Images  []string `json:"images"`
	}

	SideMenu struct {
		SideMenuOpen bool `json:"sideMenuOpen"`
	}
)

func (v CartItem) toDomain() domain.CartLineItem {
	return domain.CartLineItem{
		ProductID: v.ID,
		Size:      v.Size,
		Price:     v.Price,
		Quantity:  v.Quantity,
		Title:     v.Title,
		Image:     v.Image,
		MaxStock:  v.InStock,
	}
}

func toCartItem(v domain.CartLineItem) CartItem {
	return CartItem{
		ID:       v.ProductID,
		Size:     v.Size,
		Price:    v.Price,
		Quantity: v.Quantity,
		Title:    v.Title,
		Image:    v.Image,
		InStock:  v.MaxStock,
	}
}

func toCart(s domain.CartState) Cart {
	c := Cart{
		IsLoaded:      s.Loaded,
		Cart:          make([]CartItem, 0, len(s.Items)),
		NumberOfItems: s.ItemCount,
		SubTotal:      s.Subtotal,
		Tax:           s.Tax,
		Total:         s.Total,
	}
	for _, it := range s.Items {
		c.Cart = append(c.Cart, toCartItem(it))
	}
	if s.ShippingAddress != nil {
		addr := toShippingAddress(*s.ShippingAddress)
		c.ShippingAddress = &addr
	}
	return c
}

func (v ShippingAddress) toDomain() domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Address:   v.Address,
		Address2:  v.Address2,
		Zip:       v.Zip,
		City:      v.City,
		Country:   v.Country,
		Phone:     v.Phone,
	}
}

func toShippingAddress(v domain.ShippingAddress) ShippingAddress {
	return ShippingAddress{
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Address:   v.Address,
		Address2:  v.Address2,
		Zip:       v.Zip,
		City:      v.City,
		Country:   v.Country,
		Phone:     v.Phone,
	}
}

func toProduct(v domain.Product) Product {
	return Product{
		Slug:        v.Slug,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
		InStock:     v.InStock,
		Sizes:       v.Sizes,
		Tags:        v.Tags,
		Type:        v.Type,
		Gender:      v.Gender,
		Images:      v.Images,
	}
}

func toProductSummary(v domain.ProductSummary) ProductSummary {
	return ProductSummary{
		Slug:    v.Slug,
		Title:   v.Title,
		Price:   v.Price,
		InStock: v.InStock,
		Images:  v.Images,
	}
}
