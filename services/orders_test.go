package services

import (
	"context"
	"testing"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setStatus(t *testing.T, f *fixture, orderID uint, status models.OrderStatus) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error)
}

func TestCancel_OnlyWhilePreparing(t *testing.T) {
	tests := []struct {
		status  models.OrderStatus
		wantErr error
	}{
		{models.OrderStatusPreparing, nil},
		{models.OrderStatusPacked, apperrors.ErrCannotCancel},
		{models.OrderStatusDelivered, apperrors.ErrCannotCancel},
		{models.OrderStatusCancelled, apperrors.ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newFixture(t)
			order := f.placeOrder(t)
			setStatus(t, f, order.ID, tt.status)

			got, err := f.orders().Cancel(context.Background(), f.customer.ID, order.ID)

			var stored models.Order
			require.NoError(t, f.db.First(&stored, order.ID).Error)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 400, apperrors.StatusCode(err))
				assert.Equal(t, tt.status, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusCancelled, got.Status)
			assert.Equal(t, models.OrderStatusCancelled, stored.Status)
			assert.Equal(t, []events.EventType{events.OrderPlaced, events.OrderCancelled}, f.publisher.types())
		})
	}
}

func TestCancel_UnknownOrForeignOrder(t *testing.T) {
	f := newFixture(t)
	order := f.placeOrder(t)
	other := testutil.CreateUser(t, f.db, "x@example.com", models.RoleCustomer)

	_, err := f.orders().Cancel(context.Background(), other.ID, order.ID)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	_, err = f.orders().Cancel(context.Background(), f.customer.ID, order.ID+100)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	var stored models.Order
	require.NoError(t, f.db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPreparing, stored.Status)
}

func TestHistory_SortsByStatusThenNewest(t *testing.T) {
	f := newFixture(t)
	delivered := f.placeOrder(t)
	preparingOld := f.placeOrder(t)
	cancelled := f.placeOrder(t)
	packed := f.placeOrder(t)
	preparingNew := f.placeOrder(t)

	setStatus(t, f, delivered.ID, models.OrderStatusDelivered)
	setStatus(t, f, cancelled.ID, models.OrderStatusCancelled)
	setStatus(t, f, packed.ID, models.OrderStatusPacked)
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", packed.ID).Update("delivery_partner_id", f.partner.ID).Error)

	history, err := f.orders().History(context.Background(), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 5)

	var ids []uint
	for _, h := range history {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []uint{preparingNew.ID, preparingOld.ID, packed.ID, delivered.ID, cancelled.ID}, ids)

	assert.True(t, history[0].CanCancel)
	assert.False(t, history[2].CanCancel)
	require.NotNil(t, history[2].DeliveryPartner)
	assert.Equal(t, f.partner.Phone, history[2].DeliveryPartner.Phone)
	assert.Nil(t, history[0].DeliveryPartner)
	assert.Equal(t, "Burger Barn", history[0].Restaurant.Name)
	assert.Equal(t, f.address.Line1, history[0].Address.Line1)
	assert.Len(t, history[0].Items, 2)
}

func TestHistory_OnlyOwnOrders(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t)
	other := testutil.CreateUser(t, f.db, "x@example.com", models.RoleCustomer)

	history, err := f.orders().History(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := f.orders()
	ctx := context.Background()
	order := f.placeOrder(t)
	otherOwner := testutil.CreateUser(t, f.db, "o2@example.com", models.RoleRestaurantOwner)
	otherPartner := testutil.CreateUser(t, f.db, "r2@example.com", models.RoleDeliveryPartner)

	_, err := svc.Accept(ctx, f.partner.ID, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "cannot accept before packing")

	_, err = svc.MarkPacked(ctx, otherOwner.ID, order.ID)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	packed, err := svc.MarkPacked(ctx, f.owner.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPacked, packed.Status)

	_, err = svc.MarkPacked(ctx, f.owner.ID, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	available, err := svc.AvailableForPickup(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)

	accepted, err := svc.Accept(ctx, f.partner.ID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted.DeliveryPartnerID)
	assert.Equal(t, f.partner.ID, *accepted.DeliveryPartnerID)

	_, err = svc.Accept(ctx, otherPartner.ID, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "already assigned")

	available, err = svc.AvailableForPickup(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = svc.Deliver(ctx, otherPartner.ID, order.ID)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	delivered, err := svc.Deliver(ctx, f.partner.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)

	_, err = f.orders().Cancel(ctx, f.customer.ID, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrCannotCancel)

	mine, err := svc.PartnerOrders(ctx, f.partner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.Equal(t, []events.EventType{
		events.OrderPlaced,
		events.OrderStatusChanged,
		events.OrderStatusChanged,
		events.OrderStatusChanged,
	}, f.publisher.types())
}

func TestRestaurantOrders(t *testing.T) {
	f := newFixture(t)
	first := f.placeOrder(t)
	f.placeOrder(t)
	setStatus(t, f, first.ID, models.OrderStatusPacked)

	all, err := f.orders().RestaurantOrders(context.Background(), f.owner.ID, f.restaurant.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	packed, err := f.orders().RestaurantOrders(context.Background(), f.owner.ID, f.restaurant.ID, "Packed")
	require.NoError(t, err)
	require.Len(t, packed, 1)
	assert.Equal(t, first.ID, packed[0].ID)

	_, err = f.orders().RestaurantOrders(context.Background(), f.customer.ID, f.restaurant.ID, "")
	assert.Equal(t, 404, apperrors.StatusCode(err))
}
