package domain

type (
	// A CartLineItem is a single (product, size) entry in the cart.
	//
	// Two items with the same ProductID but different Size are distinct
	// lines; same ProductID and Size must be merged, never duplicated.
	CartLineItem struct {
		ProductID string
		Size      string
		Price     float64
		Quantity  int
		Title     string
		Image     string
		MaxStock  int
	}

	ShippingAddress struct {
		FirstName string
		LastName  string
		Address   string
		Address2  string
		Zip       string
		City      string
		Country   string
		Phone     string
	}

	// A CartState is the aggregate held by the cart store.
	//
	// ItemCount, Subtotal, Tax and Total are derived from Items and the
	// tax rate; they are recomputed on every item change and never set
	// directly.
	CartState struct {
		Loaded          bool
		Items           []CartLineItem
		ItemCount       int
		Subtotal        float64
		Tax             float64
		Total           float64
		ShippingAddress *ShippingAddress
	}
)

// SameLine reports whether v and o identify the same cart line.
func (v CartLineItem) SameLine(o CartLineItem) bool {
	return v.ProductID == o.ProductID && v.Size == o.Size
}

type (
	// An Order is the snapshot submitted to the backend. Created once at
	// submission time and owned by the backend thereafter.
	Order struct {
		Items           []CartLineItem
		ShippingAddress ShippingAddress
		ItemCount       int
		Subtotal        float64
		Tax             float64
		Total           float64
		IsPaid          bool
	}

	// A SubmitResult is the tagged outcome of an order submission.
	SubmitResult struct {
		HasError bool
		Message  string
	}
)

const (
	CartEventProductAdded   = "product_added"
	CartEventQuantityChange = "quantity_changed"
	CartEventProductRemoved = "product_removed"
	CartEventOrderSubmitted = "order_submitted"
)

type CartEvent struct {
	EventID   string
	Type      string
	ProductID string
	Size      string
	Quantity  int
	OrderID   string
}
