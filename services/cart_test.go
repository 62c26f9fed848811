package services

import (
	"context"
	"testing"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddIncrementsAndPrices(t *testing.T) {
	f := newFixture(t)
	svc := f.carts()
	ctx := context.Background()

	_, err := svc.Add(ctx, f.customer.ID, f.burger.ID, false)
	require.NoError(t, err)
	_, err = svc.Add(ctx, f.customer.ID, f.burger.ID, false)
	require.NoError(t, err)
	view, err := svc.Add(ctx, f.customer.ID, f.fries.ID, false)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "Burger", view.Items[0].FoodItem.Name)
	assert.Equal(t, f.restaurant.ID, view.RestaurantID)
	assertDecimal(t, "250", view.Price.TotalPrice)
	assertDecimal(t, "20", view.Price.TotalDiscount)
	assertDecimal(t, "265", view.Price.FinalPrice)
}

func TestCart_OneRestaurantAtATime(t *testing.T) {
	f := newFixture(t)
	svc := f.carts()
	ctx := context.Background()
	otherOwner := testutil.CreateUser(t, f.db, "o2@example.com", models.RoleRestaurantOwner)
	pizzeria := testutil.CreateRestaurant(t, f.db, otherOwner.ID, "Pizzeria")
	pizza := testutil.CreateFoodItem(t, f.db, pizzeria.ID, "Margherita", "300", "0", "0")

	_, err := svc.Add(ctx, f.customer.ID, f.burger.ID, false)
	require.NoError(t, err)

	_, err = svc.Add(ctx, f.customer.ID, pizza.ID, false)
	require.ErrorIs(t, err, apperrors.ErrMixedRestaurants)
	assert.Equal(t, 409, apperrors.StatusCode(err))

	view, err := svc.Add(ctx, f.customer.ID, pizza.ID, true)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, pizza.ID, view.Items[0].FoodItemID)
	assert.Equal(t, pizzeria.ID, view.RestaurantID)
}

func TestCart_RejectsMissingAndUnavailableItems(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.fries).Update("available", false).Error)

	_, err := f.carts().Add(context.Background(), f.customer.ID, f.fries.ID, false)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	_, err = f.carts().Add(context.Background(), f.customer.ID, 9999, false)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func TestCart_RemoveAndClear(t *testing.T) {
	f := newFixture(t)
	svc := f.carts()
	ctx := context.Background()
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
	testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)

	view, err := svc.Remove(ctx, f.customer.ID, f.burger.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = svc.Remove(ctx, f.customer.ID, f.fries.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	_, err = svc.Remove(ctx, f.customer.ID, f.fries.ID)
	assert.Equal(t, 404, apperrors.StatusCode(err))

	require.NoError(t, svc.Clear(ctx, f.customer.ID))
	view, err = svc.View(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assertDecimal(t, "35", view.Price.FinalPrice)

	_, err = svc.Add(ctx, f.customer.ID, f.fries.ID, false)
	require.NoError(t, err, "hard-deleted lines must not block the unique index")
}
