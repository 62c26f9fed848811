package models

import "gorm.io/gorm"

type CustomerAddress struct {
	gorm.Model
	CustomerID uint    `json:"customerId" gorm:"index"`
	Label      string  `json:"label"`
	Line1      string  `json:"line1" gorm:"not null"`
	Line2      string  `json:"line2"`
	City       string  `json:"city"`
	Pincode    string  `json:"pincode" gorm:"size:16"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type AddressInput struct {
	Label     string  `json:"label"`
	Line1     string  `json:"line1" binding:"required"`
	Line2     string  `json:"line2"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode" binding:"required,max=16"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}
