package kafka

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/teslo-shop/storefront/internal/core/domain"
	"github.com/teslo-shop/storefront/internal/core/port"
	"github.com/teslo-shop/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CartEventsProducer = (*CartEventsProducer)(nil)

// A CartEventsProducer publishes one record per user-level cart
// mutation to the cart-events topic.
type CartEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewCartEventsProducer(opts ...ProducerOpt) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}
	return CartEventsProducer{options.cl, options.encoder}, nil
}

func (p CartEventsProducer) Close() {
	const op = "CartEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	const op = "CartEventsProducer.ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, &r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p CartEventsProducer) createRecord(
	evt domain.CartEvent,
) (kgo.Record, error) {
	const op = "CartEventsProducer.createRecord"

	s := p.toSchema(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, op)
	}
	return kgo.Record{Key: p.recordKey(evt), Value: b}, nil
}

// recordKey partitions product events by product and submission events
// by order.
func (CartEventsProducer) recordKey(evt domain.CartEvent) []byte {
	if evt.ProductID != "" {
		return []byte(evt.ProductID)
	}
	return []byte(evt.OrderID)
}

func (CartEventsProducer) toSchema(evt domain.CartEvent) (s schema.CartEventV1) {
	s.EventID = evt.EventID
	if s.EventID == "" {
		s.EventID = uuid.NewString()
	}
	s.Type = evt.Type
	s.ProductID = evt.ProductID
	s.Size = evt.Size
	s.Quantity = evt.Quantity
	s.OrderID = evt.OrderID
	return
}
