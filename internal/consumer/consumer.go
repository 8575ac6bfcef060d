// Package consumer applies order lifecycle events to product stock:
// stock is reserved when an order is created and released when it is
// cancelled.
package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ec-service/internal/entity"
)

// StockAdjuster applies a stock delta for a product.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID string, delta int) error
}

type Consumer struct {
	reader *kafka.Reader
	stock  StockAdjuster
}

func New(reader *kafka.Reader, stock StockAdjuster) *Consumer {
	return &Consumer{reader: reader, stock: stock}
}

// Run reads order events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}
		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var order entity.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	// key -> "order.created.<id>" or "order.cancelled.<id>"
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) < 2 {
		log.Error().Msgf("Malformed event key: %s", msg.Key)
		return
	}

	switch parts[1] {
	case "created":
		for _, item := range order.Items {
			if err := c.stock.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				log.Error().Msgf("Error reserving stock for product %s: %v", item.ProductID, err)
			}
		}
	case "cancelled":
		for _, item := range order.Items {
			if err := c.stock.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				log.Error().Msgf("Error releasing stock for product %s: %v", item.ProductID, err)
			}
		}
	case "updated":
		// Status changes other than cancellation carry no stock effect.
	default:
		log.Error().Msgf("Unknown order event: %s", parts[1])
	}
}
