package models

import "gorm.io/gorm"

type SupportQueryStatus string

const (
	SupportQueryOpen     SupportQueryStatus = "Open"
	SupportQueryResolved SupportQueryStatus = "Resolved"
)

type SupportQuery struct {
	gorm.Model
	CustomerID uint               `json:"customerId" gorm:"index"`
	OrderID    *uint              `json:"orderId"`
	Subject    string             `json:"subject" gorm:"size:191;not null"`
	Message    string             `json:"message" gorm:"type:text"`
	Status     SupportQueryStatus `json:"status" gorm:"size:16;index;not null"`
	Response   string             `json:"response" gorm:"type:text"`
	ResolvedBy *uint              `json:"resolvedBy"`
}

type SupportQueryInput struct {
	OrderID *uint  `json:"orderId"`
	Subject string `json:"subject" binding:"required,max=191"`
	Message string `json:"message" binding:"required"`
}

type ResolveQueryInput struct {
	Response string `json:"response" binding:"required"`
}
