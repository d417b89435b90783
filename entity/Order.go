package entity

import (
	"gorm.io/gorm"
)

const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderDelivered = "DELIVERED"
)

type Order struct {
	gorm.Model
	UserID       uint       `json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Price  float64 `json:"price"`
	Status string  `gorm:"not null;default:PENDING" json:"status"`
}
