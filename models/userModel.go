package models

import "gorm.io/gorm"

type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleDeliveryPartner Role = "delivery_partner"
	RoleManagement      Role = "management"
)

type User struct {
	gorm.Model
	Fullname string `json:"fullname"`
	Email    string `json:"email" gorm:"size:191;uniqueIndex"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"size:32;index"`
}

type SignupData struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
