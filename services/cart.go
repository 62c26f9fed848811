package services

import (
	"context"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartService struct {
	db      *gorm.DB
	charges pricing.Charges
}

func NewCartService(db *gorm.DB, charges pricing.Charges) *CartService {
	return &CartService{db: db, charges: charges}
}

type CartView struct {
	RestaurantID uint              `json:"restaurantId"`
	Items        []models.CartItem `json:"items"`
	Price        pricing.Breakdown `json:"price"`
}

// Add puts one unit of itemID in the cart. A cart holds one restaurant at a
// time; replace clears a cart holding another restaurant's items.
func (s *CartService) Add(ctx context.Context, customerID, itemID uint, replace bool) (*CartView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FoodItem
		if err := tx.First(&item, itemID).Error; err != nil {
			return notFoundOr(err, "food item not found", "failed to load food item")
		}
		if !item.Available {
			return apperrors.InvalidState("food item is not available")
		}

		var lines []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ?", customerID).
			Find(&lines).Error; err != nil {
			return dbError("failed to load cart", err)
		}

		for _, line := range lines {
			if line.RestaurantID == item.RestaurantID {
				continue
			}
			if !replace {
				return apperrors.ErrMixedRestaurants
			}
			if err := clearCart(tx, customerID); err != nil {
				return err
			}
			lines = nil
			break
		}

		for _, line := range lines {
			if line.FoodItemID == item.ID {
				err := tx.Model(&models.CartItem{}).
					Where("id = ?", line.ID).
					Update("quantity", gorm.Expr("quantity + ?", 1)).Error
				return dbError("failed to update cart", err)
			}
		}

		line := models.CartItem{
			CustomerID:   customerID,
			RestaurantID: item.RestaurantID,
			FoodItemID:   item.ID,
			Quantity:     1,
		}
		if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
			return dbError("failed to add to cart", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, customerID)
}

// Remove takes one unit of itemID out of the cart, dropping the line at zero.
func (s *CartService) Remove(ctx context.Context, customerID, itemID uint) (*CartView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line models.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ? AND food_item_id = ?", customerID, itemID).
			First(&line).Error
		if err != nil {
			return notFoundOr(err, "item not in cart", "failed to load cart")
		}

		if line.Quantity <= 1 {
			return dbError("failed to update cart", tx.Unscoped().Delete(&line).Error)
		}
		err = tx.Model(&models.CartItem{}).
			Where("id = ?", line.ID).
			Update("quantity", gorm.Expr("quantity - ?", 1)).Error
		return dbError("failed to update cart", err)
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, customerID)
}

func (s *CartService) Clear(ctx context.Context, customerID uint) error {
	return clearCart(s.db.WithContext(ctx), customerID)
}

func (s *CartService) View(ctx context.Context, customerID uint) (*CartView, error) {
	var lines []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("FoodItem", unscoped).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, dbError("failed to load cart", err)
	}

	view := &CartView{Items: lines, Price: pricing.Calculate(pricingLines(lines), s.charges)}
	if len(lines) > 0 {
		view.RestaurantID = lines[0].RestaurantID
	}
	return view, nil
}

func clearCart(tx *gorm.DB, customerID uint) error {
	err := tx.Unscoped().Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
	if err != nil {
		return dbError("failed to clear cart", err)
	}
	return nil
}

// pricingLines expects FoodItem to be loaded on every line.
func pricingLines(lines []models.CartItem) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{
			ItemID:          l.FoodItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.FoodItem.Price,
			DiscountPercent: l.FoodItem.DiscountPercent,
			DiscountCap:     l.FoodItem.DiscountCap,
		})
	}
	return out
}
