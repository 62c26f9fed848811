package services

import (
	"context"
	"time"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/reports"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const topItemsLimit = 5

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type StatusTotals struct {
	Status  string          `json:"status"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ItemSales struct {
	ItemID   uint            `json:"itemId"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type RoleCount struct {
	Role  models.Role `json:"role"`
	Users int64       `json:"users"`
}

type RestaurantSales struct {
	RestaurantID    uint            `json:"restaurantId"`
	Name            string          `json:"name"`
	Orders          int64           `json:"orders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	CancelledOrders int64           `json:"cancelledOrders"`
	Revenue         decimal.Decimal `json:"revenue"`
}

type RestaurantDashboard struct {
	RestaurantID     uint            `json:"restaurantId"`
	ByStatus         []StatusTotals  `json:"byStatus"`
	DeliveredRevenue decimal.Decimal `json:"deliveredRevenue"`
	TopItems         []ItemSales     `json:"topItems"`
}

type ManagementDashboard struct {
	ByStatus           []StatusTotals    `json:"byStatus"`
	DeliveredRevenue   decimal.Decimal   `json:"deliveredRevenue"`
	Restaurants        []RestaurantSales `json:"restaurants"`
	UsersByRole        []RoleCount       `json:"usersByRole"`
	OpenSupportQueries int64             `json:"openSupportQueries"`
}

func (s *DashboardService) Restaurant(ctx context.Context, ownerID, restaurantID uint) (*RestaurantDashboard, error) {
	db := s.db.WithContext(ctx)
	if err := ensureRestaurantOwner(db, ownerID, restaurantID); err != nil {
		return nil, err
	}

	byStatus, err := statusTotals(db.Where("restaurant_id = ?", restaurantID))
	if err != nil {
		return nil, err
	}

	var top []ItemSales
	err = db.Table("order_lines").
		Select("order_lines.food_item_id AS item_id, order_lines.name AS name, SUM(order_lines.quantity) AS quantity, SUM(order_lines.price * order_lines.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.restaurant_id = ? AND orders.status <> ? AND orders.deleted_at IS NULL AND order_lines.deleted_at IS NULL",
			restaurantID, models.OrderStatusCancelled).
		Group("order_lines.food_item_id, order_lines.name").
		Order("quantity DESC").
		Limit(topItemsLimit).
		Scan(&top).Error
	if err != nil {
		return nil, dbError("failed to load top items", err)
	}
	for i := range top {
		top[i].Revenue = top[i].Revenue.Round(2)
	}

	return &RestaurantDashboard{
		RestaurantID:     restaurantID,
		ByStatus:         byStatus,
		DeliveredRevenue: deliveredRevenue(byStatus),
		TopItems:         top,
	}, nil
}

func (s *DashboardService) Management(ctx context.Context) (*ManagementDashboard, error) {
	db := s.db.WithContext(ctx)

	byStatus, err := statusTotals(db)
	if err != nil {
		return nil, err
	}
	sales, err := s.Sales(ctx)
	if err != nil {
		return nil, err
	}

	var roles []RoleCount
	if err := db.Model(&models.User{}).
		Select("role, COUNT(*) AS users").
		Group("role").
		Order("role").
		Scan(&roles).Error; err != nil {
		return nil, dbError("failed to count users", err)
	}

	var open int64
	if err := db.Model(&models.SupportQuery{}).
		Where("status = ?", models.SupportQueryOpen).
		Count(&open).Error; err != nil {
		return nil, dbError("failed to count support queries", err)
	}

	return &ManagementDashboard{
		ByStatus:           byStatus,
		DeliveredRevenue:   deliveredRevenue(byStatus),
		Restaurants:        sales,
		UsersByRole:        roles,
		OpenSupportQueries: open,
	}, nil
}

// Sales returns per-restaurant order counts and delivered revenue.
func (s *DashboardService) Sales(ctx context.Context) ([]RestaurantSales, error) {
	var rows []RestaurantSales
	err := s.db.WithContext(ctx).Raw(`
SELECT restaurants.id AS restaurant_id, restaurants.name AS name,
	COUNT(orders.id) AS orders,
	COALESCE(SUM(CASE WHEN orders.status = ? THEN 1 ELSE 0 END), 0) AS delivered_orders,
	COALESCE(SUM(CASE WHEN orders.status = ? THEN 1 ELSE 0 END), 0) AS cancelled_orders,
	COALESCE(SUM(CASE WHEN orders.status = ? THEN orders.checkout_price ELSE 0 END), 0) AS revenue
FROM restaurants
LEFT JOIN orders ON orders.restaurant_id = restaurants.id AND orders.deleted_at IS NULL
WHERE restaurants.deleted_at IS NULL
GROUP BY restaurants.id, restaurants.name
ORDER BY revenue DESC, restaurants.id`,
		models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusDelivered,
	).Scan(&rows).Error
	if err != nil {
		return nil, dbError("failed to load sales", err)
	}
	for i := range rows {
		rows[i].Revenue = rows[i].Revenue.Round(2)
	}
	return rows, nil
}

// SalesWorkbook renders Sales as an xlsx file.
func (s *DashboardService) SalesWorkbook(ctx context.Context) ([]byte, error) {
	sales, err := s.Sales(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]reports.SalesRow, 0, len(sales))
	for _, r := range sales {
		rows = append(rows, reports.SalesRow{
			RestaurantID:    r.RestaurantID,
			Restaurant:      r.Name,
			Orders:          r.Orders,
			DeliveredOrders: r.DeliveredOrders,
			CancelledOrders: r.CancelledOrders,
			Revenue:         r.Revenue,
		})
	}
	data, err := reports.SalesWorkbook(rows, time.Now())
	if err != nil {
		return nil, dbError("failed to render sales workbook", err)
	}
	return data, nil
}

func statusTotals(scope *gorm.DB) ([]StatusTotals, error) {
	var rows []StatusTotals
	err := scope.Model(&models.Order{}).
		Select("status, COUNT(*) AS orders, COALESCE(SUM(checkout_price), 0) AS revenue").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError("failed to load order totals", err)
	}
	for i := range rows {
		rows[i].Revenue = rows[i].Revenue.Round(2)
	}
	return rows, nil
}

func deliveredRevenue(rows []StatusTotals) decimal.Decimal {
	for _, r := range rows {
		if r.Status == string(models.OrderStatusDelivered) {
			return r.Revenue
		}
	}
	return decimal.Zero
}
