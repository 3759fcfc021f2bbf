package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields" : [
		{"name": "event_id", "type": "string"},
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "size", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "order_id", "type": "string"}
	]
}`

type CartEventV1 struct {
	EventID   string `avro:"event_id"`
	Type      string `avro:"type"`
	ProductID string `avro:"product_id"`
	Size      string `avro:"size"`
	Quantity  int    `avro:"quantity"`
	OrderID   string `avro:"order_id"`
}
