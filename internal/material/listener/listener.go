package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/material"
	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/model"
	"github.com/tokotrack/catalog-service/pkg/broker"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

// OrderListener consumes OrderCreated events and deducts the sold
// variations' stock plus the materials their effective BOM consumes.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       material.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc material.UseCase, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting Order Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Order Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID     string             `json:"id"`
	ShopID string             `json:"shop_id"`
	Items  []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID   string `json:"product_id"`
	VariationID string `json:"variation_id"`
	Quantity    int    `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		if item.VariationID == "" {
			continue
		}

		err := l.uc.ConsumeForSale(ctx, &dto.ConsumeForSaleInput{
			ShopID:      event.Payload.ShopID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			ReferenceID: event.Payload.ID,
			UserID:      model.SystemOwner,
		})
		if err != nil {
			l.logger.Error("Failed to consume stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("variation_id", item.VariationID),
				zap.Error(err),
			)
		}
	}
}
