package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/pricing"
	"github.com/Kariqs/foodhub-api/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (r *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// fixture is a restaurant with two menu items and a customer with an address.
type fixture struct {
	db         *gorm.DB
	customer   models.User
	owner      models.User
	partner    models.User
	restaurant models.Restaurant
	burger     models.FoodItem
	fries      models.FoodItem
	address    models.CustomerAddress
	publisher  *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{db: db, publisher: &recordingPublisher{}}
	f.customer = testutil.CreateUser(t, db, "cust@example.com", models.RoleCustomer)
	f.owner = testutil.CreateUser(t, db, "owner@example.com", models.RoleRestaurantOwner)
	f.partner = testutil.CreateUser(t, db, "rider@example.com", models.RoleDeliveryPartner)
	f.restaurant = testutil.CreateRestaurant(t, db, f.owner.ID, "Burger Barn")
	f.burger = testutil.CreateFoodItem(t, db, f.restaurant.ID, "Burger", "100", "10", "5")
	f.fries = testutil.CreateFoodItem(t, db, f.restaurant.ID, "Fries", "50", "20", "20")
	f.address = testutil.CreateAddress(t, db, f.customer.ID)
	return f
}

func (f *fixture) checkout() *CheckoutService {
	return NewCheckoutService(f.db, pricing.DefaultCharges(), f.publisher)
}

func (f *fixture) orders() *OrderService {
	return NewOrderService(f.db, f.publisher)
}

func (f *fixture) carts() *CartService {
	return NewCartService(f.db, pricing.DefaultCharges())
}

// placeOrder fills the cart with 2 burgers and 1 fries and checks out.
func (f *fixture) placeOrder(t *testing.T) models.Order {
	t.Helper()
	testutil.AddToCart(t, f.db, f.customer.ID, f.burger, 2)
	testutil.AddToCart(t, f.db, f.customer.ID, f.fries, 1)
	res, err := f.checkout().PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: f.customer.ID, AddressID: f.address.ID})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return res.Order
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func chargesOf(delivery, platform string) pricing.Charges {
	return pricing.Charges{
		Delivery: decimal.RequireFromString(delivery),
		Platform: decimal.RequireFromString(platform),
	}
}
