package services

import (
	"context"
	"strings"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/models"
	"gorm.io/gorm"
)

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(ctx context.Context, customerID uint) ([]models.CustomerAddress, error) {
	var out []models.CustomerAddress
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&out).Error; err != nil {
		return nil, dbError("failed to load addresses", err)
	}
	return out, nil
}

func (s *AddressService) Create(ctx context.Context, customerID uint, in models.AddressInput) (*models.CustomerAddress, error) {
	a := models.CustomerAddress{
		CustomerID: customerID,
		Label:      strings.TrimSpace(in.Label),
		Line1:      strings.TrimSpace(in.Line1),
		Line2:      strings.TrimSpace(in.Line2),
		City:       strings.TrimSpace(in.City),
		Pincode:    strings.TrimSpace(in.Pincode),
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}
	if a.Line1 == "" {
		return nil, apperrors.Validation("line1 is required")
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, dbError("failed to create address", err)
	}
	return &a, nil
}

// Delete soft-deletes the address; past orders keep pointing at it.
func (s *AddressService) Delete(ctx context.Context, customerID, addressID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.CustomerAddress{})
	if res.Error != nil {
		return dbError("failed to delete address", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address not found")
	}
	return nil
}
