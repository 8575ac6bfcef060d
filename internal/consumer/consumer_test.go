package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
)

type recordingAdjuster struct {
	deltas map[string]int
}

func (r *recordingAdjuster) AdjustStock(ctx context.Context, productID string, delta int) error {
	if r.deltas == nil {
		r.deltas = make(map[string]int)
	}
	r.deltas[productID] += delta
	return nil
}

func orderMessage(t *testing.T, event string, order *entity.Order) kafka.Message {
	t.Helper()
	value, err := json.Marshal(order)
	require.NoError(t, err)
	return kafka.Message{
		Key:   []byte("order." + event + "." + order.ID),
		Value: value,
	}
}

func TestCreatedEventReservesStock(t *testing.T) {
	stock := &recordingAdjuster{}
	c := New(nil, stock)

	order := &entity.Order{
		ID: "o1",
		Items: []*entity.OrderItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}
	c.processMessage(context.Background(), orderMessage(t, "created", order))

	assert.Equal(t, -2, stock.deltas["p1"])
	assert.Equal(t, -1, stock.deltas["p2"])
}

func TestCancelledEventReleasesStock(t *testing.T) {
	stock := &recordingAdjuster{}
	c := New(nil, stock)

	order := &entity.Order{
		ID:    "o1",
		Items: []*entity.OrderItem{{ProductID: "p1", Quantity: 3}},
	}
	c.processMessage(context.Background(), orderMessage(t, "cancelled", order))

	assert.Equal(t, 3, stock.deltas["p1"])
}

func TestUpdatedEventHasNoStockEffect(t *testing.T) {
	stock := &recordingAdjuster{}
	c := New(nil, stock)

	order := &entity.Order{
		ID:    "o1",
		Items: []*entity.OrderItem{{ProductID: "p1", Quantity: 3}},
	}
	c.processMessage(context.Background(), orderMessage(t, "updated", order))

	assert.Empty(t, stock.deltas)
}

func TestMalformedMessagesAreSkipped(t *testing.T) {
	stock := &recordingAdjuster{}
	c := New(nil, stock)

	c.processMessage(context.Background(), kafka.Message{Key: []byte("garbage"), Value: []byte("not json")})
	c.processMessage(context.Background(), kafka.Message{Key: []byte("noseparator"), Value: []byte("{}")})

	assert.Empty(t, stock.deltas)
}
