package services

import (
	"context"
	"time"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// statusPriority orders history: active orders first, then finished ones.
const statusPriority = "CASE status WHEN 'Preparing' THEN 0 WHEN 'Packed' THEN 1 WHEN 'Delivered' THEN 2 WHEN 'Cancelled' THEN 3 ELSE 4 END"

type OrderService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewOrderService(db *gorm.DB, publisher events.Publisher) *OrderService {
	return &OrderService{db: db, publisher: publisher}
}

type RestaurantSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageUrl string `json:"imageUrl"`
}

type PartnerSummary struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
}

type OrderItemSummary struct {
	ItemID   uint            `json:"itemId"`
	Name     string          `json:"name"`
	ImageUrl string          `json:"imageUrl"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderSummary struct {
	ID              uint                   `json:"id"`
	Status          models.OrderStatus     `json:"status"`
	CanCancel       bool                   `json:"canCancel"`
	Specifications  string                 `json:"specifications"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
	TotalDiscount   decimal.Decimal        `json:"totalDiscount"`
	DeliveryCharge  decimal.Decimal        `json:"deliveryCharge"`
	PlatformCharge  decimal.Decimal        `json:"platformCharge"`
	CheckoutPrice   decimal.Decimal        `json:"checkoutPrice"`
	CreatedAt       time.Time              `json:"createdAt"`
	Address         models.CustomerAddress `json:"address"`
	Restaurant      RestaurantSummary      `json:"restaurant"`
	DeliveryPartner *PartnerSummary        `json:"deliveryPartner"`
	Items           []OrderItemSummary     `json:"items"`
}

// Cancel moves an order from Preparing to Cancelled. The status check and
// the update are a single statement.
func (s *OrderService) Cancel(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Order{}).
		Where("id = ? AND customer_id = ? AND status = ?", orderID, customerID, models.OrderStatusPreparing).
		Update("status", models.OrderStatusCancelled)
	if res.Error != nil {
		return nil, dbError("failed to cancel order", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.ensureOrder(db.Where("id = ? AND customer_id = ?", orderID, customerID)); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrCannotCancel
	}

	var order models.Order
	if err := db.Preload("Lines").First(&order, orderID).Error; err != nil {
		return nil, dbError("failed to load order", err)
	}
	log.Info().Uint("orderId", order.ID).Uint("customerId", customerID).Msg("order_cancelled")
	publish(ctx, s.publisher, events.OrderCancelled, order)
	return &order, nil
}

func (s *OrderService) History(ctx context.Context, customerID uint) ([]OrderSummary, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.FoodItem", unscoped).
		Preload("Address", unscoped).
		Preload("Restaurant", unscoped).
		Preload("DeliveryPartner", unscoped).
		Where("customer_id = ?", customerID).
		Order(statusPriority).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, dbError("failed to load order history", err)
	}

	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, summarize(o))
	}
	return out, nil
}

func summarize(o models.Order) OrderSummary {
	summary := OrderSummary{
		ID:             o.ID,
		Status:         o.Status,
		CanCancel:      o.Status == models.OrderStatusPreparing,
		Specifications: o.Specifications,
		TotalPrice:     o.TotalPrice,
		TotalDiscount:  o.TotalDiscount,
		DeliveryCharge: o.DeliveryCharge,
		PlatformCharge: o.PlatformCharge,
		CheckoutPrice:  o.CheckoutPrice,
		CreatedAt:      o.CreatedAt,
		Address:        o.Address,
		Restaurant: RestaurantSummary{
			ID:       o.Restaurant.ID,
			Name:     o.Restaurant.Name,
			ImageUrl: o.Restaurant.ImageUrl,
		},
		Items: make([]OrderItemSummary, 0, len(o.Lines)),
	}
	if p := o.DeliveryPartner; p != nil {
		summary.DeliveryPartner = &PartnerSummary{ID: p.ID, Fullname: p.Fullname, Phone: p.Phone}
	}
	for _, l := range o.Lines {
		summary.Items = append(summary.Items, OrderItemSummary{
			ItemID:   l.FoodItemID,
			Name:     l.Name,
			ImageUrl: l.FoodItem.ImageUrl,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}
	return summary
}

// MarkPacked is called by the owner of the order's restaurant.
func (s *OrderService) MarkPacked(ctx context.Context, ownerID, orderID uint) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureOrder(ownedOrders(db, ownerID).Where("orders.id = ?", orderID)); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID,
		db.Where("id = ? AND status = ?", orderID, models.OrderStatusPreparing),
		map[string]any{"status": models.OrderStatusPacked})
}

// Accept assigns a packed, unassigned order to the delivery partner.
func (s *OrderService) Accept(ctx context.Context, partnerID, orderID uint) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureOrder(db.Where("id = ?", orderID)); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID,
		db.Where("id = ? AND status = ? AND delivery_partner_id IS NULL", orderID, models.OrderStatusPacked),
		map[string]any{"delivery_partner_id": partnerID})
}

// Deliver completes an order assigned to the delivery partner.
func (s *OrderService) Deliver(ctx context.Context, partnerID, orderID uint) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureOrder(db.Where("id = ? AND delivery_partner_id = ?", orderID, partnerID)); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID,
		db.Where("id = ? AND delivery_partner_id = ? AND status = ?", orderID, partnerID, models.OrderStatusPacked),
		map[string]any{"status": models.OrderStatusDelivered})
}

func (s *OrderService) transition(ctx context.Context, orderID uint, scope *gorm.DB, updates map[string]any) (*models.Order, error) {
	res := scope.Model(&models.Order{}).Updates(updates)
	if res.Error != nil {
		return nil, dbError("failed to update order", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrInvalidTransition
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		return nil, dbError("failed to load order", err)
	}
	log.Info().Uint("orderId", order.ID).Str("status", string(order.Status)).Msg("order_status_changed")
	publish(ctx, s.publisher, events.OrderStatusChanged, order)
	return &order, nil
}

// AvailableForPickup lists packed orders no partner has accepted yet.
func (s *OrderService) AvailableForPickup(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant", unscoped).
		Preload("Address", unscoped).
		Where("status = ? AND delivery_partner_id IS NULL", models.OrderStatusPacked).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, dbError("failed to load orders", err)
	}
	return orders, nil
}

// PartnerOrders lists the partner's assigned orders, newest first.
func (s *OrderService) PartnerOrders(ctx context.Context, partnerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant", unscoped).
		Preload("Address", unscoped).
		Where("delivery_partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, dbError("failed to load orders", err)
	}
	return orders, nil
}

// RestaurantOrders lists a restaurant's orders for its owner, optionally
// filtered by status.
func (s *OrderService) RestaurantOrders(ctx context.Context, ownerID, restaurantID uint, status string) ([]models.Order, error) {
	db := s.db.WithContext(ctx)
	if err := ensureRestaurantOwner(db, ownerID, restaurantID); err != nil {
		return nil, err
	}

	query := db.Preload("Lines").
		Preload("Address", unscoped).
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order(statusPriority).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, dbError("failed to load orders", err)
	}
	return orders, nil
}

func (s *OrderService) ensureOrder(scope *gorm.DB) error {
	var count int64
	if err := scope.Model(&models.Order{}).Count(&count).Error; err != nil {
		return dbError("failed to load order", err)
	}
	if count == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}

func ownedOrders(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("restaurants.owner_id = ?", ownerID)
}
