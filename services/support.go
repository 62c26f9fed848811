package services

import (
	"context"
	"strings"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SupportService struct {
	db *gorm.DB
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{db: db}
}

func (s *SupportService) Create(ctx context.Context, customerID uint, in models.SupportQueryInput) (*models.SupportQuery, error) {
	db := s.db.WithContext(ctx)
	if in.OrderID != nil {
		var count int64
		if err := db.Model(&models.Order{}).
			Where("id = ? AND customer_id = ?", *in.OrderID, customerID).
			Count(&count).Error; err != nil {
			return nil, dbError("failed to load order", err)
		}
		if count == 0 {
			return nil, apperrors.NotFound("order not found")
		}
	}

	q := models.SupportQuery{
		CustomerID: customerID,
		OrderID:    in.OrderID,
		Subject:    strings.TrimSpace(in.Subject),
		Message:    strings.TrimSpace(in.Message),
		Status:     models.SupportQueryOpen,
	}
	if err := db.Create(&q).Error; err != nil {
		return nil, dbError("failed to create support query", err)
	}
	log.Info().Uint("queryId", q.ID).Uint("customerId", customerID).Msg("support_query_opened")
	return &q, nil
}

func (s *SupportService) ListForCustomer(ctx context.Context, customerID uint) ([]models.SupportQuery, error) {
	var out []models.SupportQuery
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, dbError("failed to load support queries", err)
	}
	return out, nil
}

// List returns every query, optionally filtered by status (Open, Resolved).
func (s *SupportService) List(ctx context.Context, status string) ([]models.SupportQuery, error) {
	query := s.db.WithContext(ctx)
	if status != "" {
		switch models.SupportQueryStatus(status) {
		case models.SupportQueryOpen, models.SupportQueryResolved:
		default:
			return nil, apperrors.Validation("status must be Open or Resolved")
		}
		query = query.Where("status = ?", status)
	}
	var out []models.SupportQuery
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, dbError("failed to load support queries", err)
	}
	return out, nil
}

// Resolve closes an open query with the manager's response.
func (s *SupportService) Resolve(ctx context.Context, managerID, queryID uint, response string) (*models.SupportQuery, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.SupportQuery{}).
		Where("id = ? AND status = ?", queryID, models.SupportQueryOpen).
		Updates(map[string]any{
			"status":      models.SupportQueryResolved,
			"response":    strings.TrimSpace(response),
			"resolved_by": managerID,
		})
	if res.Error != nil {
		return nil, dbError("failed to resolve support query", res.Error)
	}

	var q models.SupportQuery
	if err := db.First(&q, queryID).Error; err != nil {
		return nil, notFoundOr(err, "support query not found", "failed to load support query")
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.InvalidState("support query is already resolved")
	}
	return &q, nil
}
