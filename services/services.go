// Package services holds the marketplace business operations. Every method
// takes the request context and returns *apperrors.Error for client-facing
// failures.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const publishTimeout = 5 * time.Second

// dbError keeps typed errors raised inside transactions and wraps the rest.
func dbError(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(message, err)
}

func notFoundOr(err error, notFound string, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	return dbError(message, err)
}

// publish is best effort; the state change is already committed.
func publish(ctx context.Context, p events.Publisher, eventType events.EventType, order models.Order) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.Publish(ctx, events.NewOrderEvent(eventType, order)); err != nil {
		log.Error().Err(err).
			Str("event", string(eventType)).
			Uint("orderId", order.ID).
			Msg("order_event_publish_failed")
	}
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
