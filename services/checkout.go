package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/pricing"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxIdempotencyKeyLen = 64

type CheckoutService struct {
	db        *gorm.DB
	charges   pricing.Charges
	publisher events.Publisher
}

func NewCheckoutService(db *gorm.DB, charges pricing.Charges, publisher events.Publisher) *CheckoutService {
	return &CheckoutService{db: db, charges: charges, publisher: publisher}
}

type PlaceOrderInput struct {
	CustomerID     uint
	AddressID      uint
	Specifications string
	IdempotencyKey string
}

type PlaceOrderResult struct {
	Order    models.Order
	Replayed bool
}

// PlaceOrder converts the customer's cart into an order in one transaction.
// A repeated idempotency key returns the order created by the first call.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	if in.AddressID == 0 {
		return nil, apperrors.Validation("addressId is required")
	}
	var key *string
	if k := strings.TrimSpace(in.IdempotencyKey); k != "" {
		if len(k) > maxIdempotencyKeyLen {
			return nil, apperrors.Validation(fmt.Sprintf("Idempotency-Key must be at most %d characters", maxIdempotencyKeyLen))
		}
		key = &k
	}

	var result PlaceOrderResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if key != nil {
			existing, err := findByIdempotencyKey(tx, in.CustomerID, *key)
			if err == nil {
				result = PlaceOrderResult{Order: *existing, Replayed: true}
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return dbError("failed to check idempotency key", err)
			}
		}

		order, err := s.placeOrder(tx, in, key)
		if key != nil && errors.Is(err, apperrors.ErrEmptyCart) {
			// A request with the same key may have committed and cleared the
			// cart while this one waited on the cart lock.
			locked := tx.Clauses(clause.Locking{Strength: "SHARE"})
			if existing, ferr := findByIdempotencyKey(locked, in.CustomerID, *key); ferr == nil {
				result = PlaceOrderResult{Order: *existing, Replayed: true}
				return nil
			}
		}
		if err != nil {
			return err
		}
		result = PlaceOrderResult{Order: *order}
		return nil
	})
	if err != nil {
		if key != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := findByIdempotencyKey(s.db.WithContext(ctx), in.CustomerID, *key); ferr == nil {
				return &PlaceOrderResult{Order: *existing, Replayed: true}, nil
			}
		}
		return nil, dbError("failed to place order", err)
	}

	if result.Replayed {
		log.Info().Uint("orderId", result.Order.ID).Uint("customerId", in.CustomerID).Msg("order_replayed")
		return &result, nil
	}

	log.Info().
		Uint("orderId", result.Order.ID).
		Uint("customerId", in.CustomerID).
		Uint("restaurantId", result.Order.RestaurantID).
		Str("checkoutPrice", result.Order.CheckoutPrice.StringFixed(2)).
		Int("lines", len(result.Order.Lines)).
		Msg("order_placed")
	publish(ctx, s.publisher, events.OrderPlaced, result.Order)
	return &result, nil
}

func (s *CheckoutService) placeOrder(tx *gorm.DB, in PlaceOrderInput, key *string) (*models.Order, error) {
	var cart []models.CartItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", in.CustomerID).
		Order("id").
		Find(&cart).Error; err != nil {
		return nil, dbError("failed to load cart", err)
	}
	if len(cart) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var address models.CustomerAddress
	if err := tx.Where("id = ? AND customer_id = ?", in.AddressID, in.CustomerID).First(&address).Error; err != nil {
		return nil, notFoundOr(err, "address not found", "failed to load address")
	}

	itemIDs := make([]uint, 0, len(cart))
	for _, line := range cart {
		itemIDs = append(itemIDs, line.FoodItemID)
	}
	var items []models.FoodItem
	if err := tx.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, dbError("failed to load food items", err)
	}
	byID := make(map[uint]models.FoodItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	restaurantID := cart[0].RestaurantID
	for i, line := range cart {
		item, ok := byID[line.FoodItemID]
		if !ok || !item.Available {
			return nil, apperrors.InvalidState(fmt.Sprintf("food item %d is no longer available", line.FoodItemID))
		}
		if item.RestaurantID != restaurantID {
			return nil, apperrors.ErrMixedRestaurants
		}
		cart[i].FoodItem = item
	}

	var restaurant models.Restaurant
	if err := tx.First(&restaurant, restaurantID).Error; err != nil {
		return nil, notFoundOr(err, "restaurant not found", "failed to load restaurant")
	}
	if !restaurant.IsOpen {
		return nil, apperrors.InvalidState("restaurant is not accepting orders")
	}

	breakdown := pricing.Calculate(pricingLines(cart), s.charges)
	if len(breakdown.Lines) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	order := models.Order{
		CustomerID:     in.CustomerID,
		RestaurantID:   restaurantID,
		AddressID:      address.ID,
		Specifications: strings.TrimSpace(in.Specifications),
		TotalPrice:     breakdown.TotalPrice,
		TotalDiscount:  breakdown.TotalDiscount,
		DeliveryCharge: breakdown.DeliveryCharge,
		PlatformCharge: breakdown.PlatformCharge,
		CheckoutPrice:  breakdown.FinalPrice,
		Status:         models.OrderStatusPreparing,
		IdempotencyKey: key,
	}
	if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
		return nil, dbError("failed to create order", err)
	}

	lines := make([]models.OrderLine, 0, len(breakdown.Lines))
	for _, b := range breakdown.Lines {
		lines = append(lines, models.OrderLine{
			OrderID:    order.ID,
			FoodItemID: b.ItemID,
			Name:       byID[b.ItemID].Name,
			Quantity:   b.Quantity,
			ListPrice:  b.UnitPrice,
			Price:      b.DiscountedUnitPrice,
		})
	}
	if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
		return nil, dbError("failed to create order lines", err)
	}

	if err := clearCart(tx, in.CustomerID); err != nil {
		return nil, err
	}

	order.Lines = lines
	return &order, nil
}

func findByIdempotencyKey(db *gorm.DB, customerID uint, key string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Lines").
		Where("customer_id = ? AND idempotency_key = ?", customerID, key).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
