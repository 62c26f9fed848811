package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RestaurantService struct {
	db *gorm.DB
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

type Menu struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Items      []models.FoodItem `json:"items"`
}

func (s *RestaurantService) Create(ctx context.Context, ownerID uint, in models.RestaurantInput) (*models.Restaurant, error) {
	r := models.Restaurant{OwnerID: ownerID, IsOpen: true}
	if err := applyRestaurantInput(&r, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, dbError("failed to create restaurant", err)
	}
	log.Info().Uint("restaurantId", r.ID).Uint("ownerId", ownerID).Msg("restaurant_created")
	return &r, nil
}

func (s *RestaurantService) Update(ctx context.Context, ownerID, restaurantID uint, in models.RestaurantInput) (*models.Restaurant, error) {
	db := s.db.WithContext(ctx)
	var r models.Restaurant
	if err := db.Where("id = ? AND owner_id = ?", restaurantID, ownerID).First(&r).Error; err != nil {
		return nil, notFoundOr(err, "restaurant not found", "failed to load restaurant")
	}
	if err := applyRestaurantInput(&r, in); err != nil {
		return nil, err
	}
	if err := db.Save(&r).Error; err != nil {
		return nil, dbError("failed to update restaurant", err)
	}
	return &r, nil
}

func (s *RestaurantService) SetImage(ctx context.Context, ownerID, restaurantID uint, url string) (*models.Restaurant, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, ownerID).
		Update("image_url", url)
	if res.Error != nil {
		return nil, dbError("failed to update restaurant", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("restaurant not found")
	}
	var r models.Restaurant
	if err := db.First(&r, restaurantID).Error; err != nil {
		return nil, dbError("failed to load restaurant", err)
	}
	return &r, nil
}

func (s *RestaurantService) ListOwned(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error; err != nil {
		return nil, dbError("failed to load restaurants", err)
	}
	return out, nil
}

// ListOpen is the customer-facing listing.
func (s *RestaurantService) ListOpen(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := s.db.WithContext(ctx).Where("is_open = ?", true).Order("name").Find(&out).Error; err != nil {
		return nil, dbError("failed to load restaurants", err)
	}
	return out, nil
}

func (s *RestaurantService) Menu(ctx context.Context, restaurantID uint) (*Menu, error) {
	db := s.db.WithContext(ctx)
	var menu Menu
	if err := db.First(&menu.Restaurant, restaurantID).Error; err != nil {
		return nil, notFoundOr(err, "restaurant not found", "failed to load restaurant")
	}
	err := db.Where("restaurant_id = ? AND available = ?", restaurantID, true).
		Order("name").
		Find(&menu.Items).Error
	if err != nil {
		return nil, dbError("failed to load menu", err)
	}
	return &menu, nil
}

func (s *RestaurantService) AddFoodItem(ctx context.Context, ownerID, restaurantID uint, in models.FoodItemInput) (*models.FoodItem, error) {
	db := s.db.WithContext(ctx)
	if err := ensureRestaurantOwner(db, ownerID, restaurantID); err != nil {
		return nil, err
	}
	item := models.FoodItem{RestaurantID: restaurantID, Available: true}
	if err := applyFoodItemInput(&item, in); err != nil {
		return nil, err
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, dbError("failed to create food item", err)
	}
	return &item, nil
}

func (s *RestaurantService) ListFoodItems(ctx context.Context, ownerID, restaurantID uint) ([]models.FoodItem, error) {
	db := s.db.WithContext(ctx)
	if err := ensureRestaurantOwner(db, ownerID, restaurantID); err != nil {
		return nil, err
	}
	var items []models.FoodItem
	if err := db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&items).Error; err != nil {
		return nil, dbError("failed to load food items", err)
	}
	return items, nil
}

func (s *RestaurantService) UpdateFoodItem(ctx context.Context, ownerID, itemID uint, in models.FoodItemInput) (*models.FoodItem, error) {
	db := s.db.WithContext(ctx)
	item, err := ownedFoodItem(db, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := applyFoodItemInput(item, in); err != nil {
		return nil, err
	}
	if err := db.Save(item).Error; err != nil {
		return nil, dbError("failed to update food item", err)
	}
	return item, nil
}

func (s *RestaurantService) SetFoodItemImage(ctx context.Context, ownerID, itemID uint, url string) (*models.FoodItem, error) {
	db := s.db.WithContext(ctx)
	item, err := ownedFoodItem(db, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(item).Update("image_url", url).Error; err != nil {
		return nil, dbError("failed to update food item", err)
	}
	item.ImageUrl = url
	return item, nil
}

// DeleteFoodItem soft-deletes the item and drops it from every cart.
func (s *RestaurantService) DeleteFoodItem(ctx context.Context, ownerID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedFoodItem(tx, ownerID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("food_item_id = ?", item.ID).Delete(&models.CartItem{}).Error; err != nil {
			return dbError("failed to remove item from carts", err)
		}
		return dbError("failed to delete food item", tx.Delete(item).Error)
	})
}

func ensureRestaurantOwner(db *gorm.DB, ownerID, restaurantID uint) error {
	var count int64
	err := db.Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, ownerID).
		Count(&count).Error
	if err != nil {
		return dbError("failed to load restaurant", err)
	}
	if count == 0 {
		return apperrors.NotFound("restaurant not found")
	}
	return nil
}

func ownedFoodItem(db *gorm.DB, ownerID, itemID uint) (*models.FoodItem, error) {
	var item models.FoodItem
	err := db.Joins("JOIN restaurants ON restaurants.id = food_items.restaurant_id AND restaurants.deleted_at IS NULL").
		Where("food_items.id = ? AND restaurants.owner_id = ?", itemID, ownerID).
		First(&item).Error
	if err != nil {
		return nil, notFoundOr(err, "food item not found", "failed to load food item")
	}
	return &item, nil
}

func applyRestaurantInput(r *models.Restaurant, in models.RestaurantInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperrors.Validation("name is required")
	}
	cuisines := in.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}
	raw, err := json.Marshal(cuisines)
	if err != nil {
		return apperrors.Validation("cuisines is invalid")
	}

	r.Name = name
	r.Description = in.Description
	r.Phone = in.Phone
	r.AddressLine = in.AddressLine
	r.Latitude = in.Latitude
	r.Longitude = in.Longitude
	r.Cuisines = datatypes.JSON(raw)
	if in.IsOpen != nil {
		r.IsOpen = *in.IsOpen
	}
	return nil
}

var maxDiscountPercent = decimal.NewFromInt(100)

func applyFoodItemInput(item *models.FoodItem, in models.FoodItemInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperrors.Validation("name is required")
	}
	if !in.Price.IsPositive() {
		return apperrors.Validation("price must be greater than 0")
	}

	item.Name = name
	item.Description = in.Description
	item.Price = in.Price.Round(2)
	item.IsVeg = in.IsVeg
	if in.DiscountPercent != nil {
		if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(maxDiscountPercent) {
			return apperrors.Validation("discountPercent must be between 0 and 100")
		}
		item.DiscountPercent = in.DiscountPercent.Round(2)
	}
	if in.DiscountCap != nil {
		if in.DiscountCap.IsNegative() {
			return apperrors.Validation("discountCap must not be negative")
		}
		item.DiscountCap = in.DiscountCap.Round(2)
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	return nil
}

// Owned returns the restaurant when ownerID owns it.
func (s *RestaurantService) Owned(ctx context.Context, ownerID, restaurantID uint) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", restaurantID, ownerID).First(&r).Error
	if err != nil {
		return nil, notFoundOr(err, "restaurant not found", "failed to load restaurant")
	}
	return &r, nil
}

func (s *RestaurantService) OwnedFoodItem(ctx context.Context, ownerID, itemID uint) (*models.FoodItem, error) {
	return ownedFoodItem(s.db.WithContext(ctx), ownerID, itemID)
}
