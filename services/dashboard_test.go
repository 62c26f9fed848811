package services

import (
	"context"
	"testing"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewDashboardService(f.db)

	delivered := f.placeOrder(t)
	cancelled := f.placeOrder(t)
	f.placeOrder(t)
	setStatus(t, f, delivered.ID, models.OrderStatusDelivered)
	setStatus(t, f, cancelled.ID, models.OrderStatusCancelled)

	rd, err := svc.Restaurant(ctx, f.owner.ID, f.restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, rd.ByStatus, 3)
	assertDecimal(t, "265", rd.DeliveredRevenue)
	require.Len(t, rd.TopItems, 2)
	assert.Equal(t, "Burger", rd.TopItems[0].Name)
	assert.Equal(t, int64(4), rd.TopItems[0].Quantity)
	assertDecimal(t, "380", rd.TopItems[0].Revenue)

	_, err = svc.Restaurant(ctx, f.customer.ID, f.restaurant.ID)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	md, err := svc.Management(ctx)
	require.NoError(t, err)
	assertDecimal(t, "265", md.DeliveredRevenue)
	require.Len(t, md.Restaurants, 1)
	assert.Equal(t, int64(3), md.Restaurants[0].Orders)
	assert.Equal(t, int64(1), md.Restaurants[0].DeliveredOrders)
	assert.Equal(t, int64(1), md.Restaurants[0].CancelledOrders)
	assertDecimal(t, "265", md.Restaurants[0].Revenue)
	assert.Len(t, md.UsersByRole, 3)
	assert.Zero(t, md.OpenSupportQueries)

	data, err := svc.SalesWorkbook(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
