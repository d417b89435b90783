package entity

import (
	"gorm.io/gorm"
)

// CartItem keeps the menu name, price and restaurant denormalized so the
// cart stays renderable even if the menu changes later.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	MenuID uint `json:"menuId"`

	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantID   uint    `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
}
