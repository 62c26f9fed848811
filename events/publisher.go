// Package events publishes order lifecycle events to brokers and live clients.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderPlaced        EventType = "order.placed"
	OrderCancelled     EventType = "order.cancelled"
	OrderStatusChanged EventType = "order.status_changed"
)

type OrderEvent struct {
	Type              EventType       `json:"type"`
	OrderID           uint            `json:"orderId"`
	CustomerID        uint            `json:"customerId"`
	RestaurantID      uint            `json:"restaurantId"`
	DeliveryPartnerID *uint           `json:"deliveryPartnerId,omitempty"`
	Status            string          `json:"status"`
	CheckoutPrice     decimal.Decimal `json:"checkoutPrice"`
	OccurredAt        time.Time       `json:"occurredAt"`
}

func NewOrderEvent(eventType EventType, order models.Order) OrderEvent {
	return OrderEvent{
		Type:              eventType,
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		RestaurantID:      order.RestaurantID,
		DeliveryPartnerID: order.DeliveryPartnerID,
		Status:            string(order.Status),
		CheckoutPrice:     order.CheckoutPrice,
		OccurredAt:        time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event OrderEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                              { return nil }
