package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	OwnerID     uint           `json:"ownerId" gorm:"index"`
	Name        string         `json:"name" gorm:"size:191;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Phone       string         `json:"phone"`
	AddressLine string         `json:"addressLine"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Cuisines    datatypes.JSON `json:"cuisines"`
	ImageUrl    string         `json:"imageUrl"`
	IsOpen      bool           `json:"isOpen"`
}

type RestaurantInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	AddressLine string   `json:"addressLine" binding:"required"`
	Latitude    float64  `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" binding:"gte=-180,lte=180"`
	Cuisines    []string `json:"cuisines"`
	IsOpen      *bool    `json:"isOpen"`
}
