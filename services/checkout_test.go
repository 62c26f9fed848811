package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestPlaceOrder_PricesAndPersists(t *testing.T) {
	f := newFixture(t)
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
	testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)

	res, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID:     f.customer.ID,
		AddressID:      f.address.ID,
		Specifications: "  no onions ",
	})
	require.NoError(t, err)
	assert.False(t, res.Replayed)

	order := res.Order
	assertDecimal(t, "250", order.TotalPrice)
	assertDecimal(t, "20", order.TotalDiscount)
	assertDecimal(t, "30", order.DeliveryCharge)
	assertDecimal(t, "5", order.PlatformCharge)
	assertDecimal(t, "265", order.CheckoutPrice)
	assert.Equal(t, models.OrderStatusPreparing, order.Status)
	assert.Equal(t, "no onions", order.Specifications)
	assert.Equal(t, f.restaurant.ID, order.RestaurantID)

	var stored models.Order
	require.NoError(t, f.db.Preload("Lines").First(&stored, order.ID).Error)
	require.Len(t, stored.Lines, 2)
	assertDecimal(t, "265", stored.CheckoutPrice)

	lineSum := decimal.Zero
	for _, l := range stored.Lines {
		lineSum = lineSum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assertDecimal(t, "265", lineSum.Add(stored.DeliveryCharge).Add(stored.PlatformCharge))

	byItem := map[uint]models.OrderLine{}
	for _, l := range stored.Lines {
		byItem[l.FoodItemID] = l
	}
	assertDecimal(t, "95", byItem[f.burger.ID].Price)
	assertDecimal(t, "100", byItem[f.burger.ID].ListPrice)
	assert.Equal(t, 2, byItem[f.burger.ID].Quantity)
	assert.Equal(t, "Fries", byItem[f.fries.ID].Name)
	assertDecimal(t, "40", byItem[f.fries.ID].Price)

	assert.Zero(t, countRows(t, f.db, &models.CartItem{}, "customer_id = ?", f.customer.ID))
	assert.Equal(t, int64(1), countRows(t, f.db, &models.Order{}, ""))
	assert.Equal(t, []events.EventType{events.OrderPlaced}, f.publisher.types())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID})

	require.ErrorIs(t, err, apperrors.ErrEmptyCart)
	assert.Equal(t, 400, apperrors.StatusCode(err))
	assert.Zero(t, countRows(t, f.db, &models.Order{}, ""))
	assert.Empty(t, f.publisher.types())
}

func TestPlaceOrder_RejectsAndRollsBack(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, f *fixture) PlaceOrderInput
		wantStatus int
	}{
		{
			name: "missing address id",
			setup: func(t *testing.T, f *fixture) PlaceOrderInput {
				return PlaceOrderInput{CustomerID: f.customer.ID}
			},
			wantStatus: 400,
		},
		{
			name: "address of another customer",
			setup: func(t *testing.T, f *fixture) PlaceOrderInput {
				other := testutil.CreateUser(t, f.db, "other@example.com", models.RoleCustomer)
				addr := testutil.CreateAddress(t, f.db, other.ID)
				return PlaceOrderInput{CustomerID: f.customer.ID, AddressID: addr.ID}
			},
			wantStatus: 404,
		},
		{
			name: "item became unavailable",
			setup: func(t *testing.T, f *fixture) PlaceOrderInput {
				require.NoError(t, f.db.Model(&f.fries).Update("available", false).Error)
				return PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID}
			},
			wantStatus: 400,
		},
		{
			name: "restaurant closed",
			setup: func(t *testing.T, f *fixture) PlaceOrderInput {
				require.NoError(t, f.db.Model(&f.restaurant).Update("is_open", false).Error)
				return PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID}
			},
			wantStatus: 400,
		},
		{
			name: "idempotency key too long",
			setup: func(t *testing.T, f *fixture) PlaceOrderInput {
				key := make([]byte, 65)
				for i := range key {
					key[i] = 'k'
				}
				return PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID, IdempotencyKey: string(key)}
			},
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
			testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)
			in := tt.setup(t, f)

			_, err := f.checkout().PlaceOrder(context.Background(), in)

			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apperrors.StatusCode(err))
			assert.Zero(t, countRows(t, f.db, &models.Order{}, ""))
			assert.Zero(t, countRows(t, f.db, &models.OrderLine{}, ""))
			assert.Equal(t, int64(2), countRows(t, f.db, &models.CartItem{}, "customer_id = ?", f.customer.ID))
		})
	}
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	svc := f.checkout()
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 1)
	in := PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID, IdempotencyKey: "req-123"}

	first, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)

	testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 3)
	second, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.True(t, first.Order.CheckoutPrice.Equal(second.Order.CheckoutPrice))
	assert.Len(t, second.Order.Lines, 1)
	assert.Equal(t, int64(1), countRows(t, f.db, &models.Order{}, ""))
	assert.Equal(t, int64(1), countRows(t, f.db, &models.CartItem{}, "customer_id = ?", f.customer.ID))
	assert.Equal(t, []events.EventType{events.OrderPlaced}, f.publisher.types())
}

func TestPlaceOrder_SecondSubmitWithoutKeySeesEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t)

	_, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID})

	require.ErrorIs(t, err, apperrors.ErrEmptyCart)
	assert.Equal(t, int64(1), countRows(t, f.db, &models.Order{}, ""))
}

func TestPlaceOrder_KeysAreScopedPerCustomer(t *testing.T) {
	f := newFixture(t)
	other := testutil.CreateUser(t, f.db, "two@example.com", models.RoleCustomer)
	otherAddr := testutil.CreateAddress(t, f.db, other.ID)
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 1)
	testutil.AddToCart(t, f.db, other.ID, f.fries, 1)

	a, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID, IdempotencyKey: "same"})
	require.NoError(t, err)
	b, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: other.ID, AddressID: otherAddr.ID, IdempotencyKey: "same"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Order.ID, b.Order.ID)
	assert.False(t, b.Replayed)
}

func TestPlaceOrder_CustomCharges(t *testing.T) {
	f := newFixture(t)
	testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)
	svc := NewCheckoutService(f.db, chargesOf("0", "2.50"), nil)

	res, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID})

	require.NoError(t, err)
	assertDecimal(t, "42.5", res.Order.CheckoutPrice)
	assertDecimal(t, "0", res.Order.DeliveryCharge)
}

func TestPlaceOrder_ConcurrentSubmitsCreateOneOrder(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"with shared key", "double-click"},
		{"without key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.checkout()
			testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
			testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)
			in := PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID, IdempotencyKey: tt.key}

			var wg sync.WaitGroup
			start := make(chan struct{})
			results := make([]*PlaceOrderResult, 2)
			errs := make([]error, 2)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					results[i], errs[i] = svc.PlaceOrder(context.Background(), in)
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Equal(t, int64(1), countRows(t, f.db, &models.Order{}, ""))
			assert.Equal(t, int64(2), countRows(t, f.db, &models.OrderLine{}, ""))
			assert.Zero(t, countRows(t, f.db, &models.CartItem{}, "customer_id = ?", f.customer.ID))
			assert.Equal(t, []events.EventType{events.OrderPlaced}, f.publisher.types())

			if tt.key == "" {
				succeeded := 0
				for i, err := range errs {
					if err == nil {
						succeeded++
						continue
					}
					assert.ErrorIs(t, errs[i], apperrors.ErrEmptyCart)
				}
				assert.Equal(t, 1, succeeded)
				return
			}

			require.NoError(t, errs[0])
			require.NoError(t, errs[1])
			assert.Equal(t, results[0].Order.ID, results[1].Order.ID)
			assert.NotEqual(t, results[0].Replayed, results[1].Replayed, "exactly one call is a replay")
		})
	}
}

// A request with the same key that commits between the key lookup and the
// locked cart read leaves the cart empty; the retry must still see its order.
func TestPlaceOrder_ReplaysKeyCommittedWhileWaitingOnCart(t *testing.T) {
	f := newFixture(t)
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
	key := "retry-1"

	var winner models.Order
	fired := false
	err := f.db.Callback().Query().Before("gorm:query").Register("test:commit_same_key", func(db *gorm.DB) {
		if fired || db.Statement.Table != "cart_items" {
			return
		}
		fired = true
		other := db.Session(&gorm.Session{NewDB: true})
		winner = models.Order{
			CustomerID:     f.customer.ID,
			RestaurantID:   f.restaurant.ID,
			AddressID:      f.address.ID,
			TotalPrice:     decimal.NewFromInt(200),
			TotalDiscount:  decimal.NewFromInt(10),
			DeliveryCharge: decimal.NewFromInt(30),
			PlatformCharge: decimal.NewFromInt(5),
			CheckoutPrice:  decimal.NewFromInt(225),
			Status:         models.OrderStatusPreparing,
			IdempotencyKey: &key,
		}
		if err := other.Omit(clause.Associations).Create(&winner).Error; err != nil {
			_ = db.AddError(err)
			return
		}
		if err := other.Unscoped().Where("customer_id = ?", f.customer.ID).Delete(&models.CartItem{}).Error; err != nil {
			_ = db.AddError(err)
		}
	})
	require.NoError(t, err)

	res, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID:     f.customer.ID,
		AddressID:      f.address.ID,
		IdempotencyKey: key,
	})

	require.NoError(t, err)
	require.True(t, fired)
	assert.True(t, res.Replayed)
	assert.Equal(t, winner.ID, res.Order.ID)
	assertDecimal(t, "225", res.Order.CheckoutPrice)
	assert.Equal(t, int64(1), countRows(t, f.db, &models.Order{}, ""))
	assert.Empty(t, f.publisher.types())
}

func TestPlaceOrder_LinesReconcileForFractionalDiscounts(t *testing.T) {
	f := newFixture(t)
	cola := testutil.CreateFoodItem(t, f.db, f.restaurant.ID, "Cola", "0.99", "33", "10")
	testutil.AddToCart(t, f.db, f.customer.ID, cola, 100)

	res, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID})
	require.NoError(t, err)
	assertDecimal(t, "99", res.Order.TotalPrice)
	assertDecimal(t, "32.67", res.Order.TotalDiscount)
	assertDecimal(t, "101.33", res.Order.CheckoutPrice)

	var stored models.Order
	require.NoError(t, f.db.Preload("Lines").First(&stored, res.Order.ID).Error)
	require.Len(t, stored.Lines, 1)
	assertDecimal(t, "0.6633", stored.Lines[0].Price)

	lineSum := stored.Lines[0].Price.Mul(decimal.NewFromInt(int64(stored.Lines[0].Quantity)))
	assertDecimal(t, "101.33", lineSum.Add(stored.DeliveryCharge).Add(stored.PlatformCharge).Round(2))
}
