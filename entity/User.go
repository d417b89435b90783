package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Relations — preload only when needed
	Wallet *Wallet `gorm:"foreignKey:UserID" json:"-"`
	Cart   *Cart   `gorm:"foreignKey:UserID" json:"-"`
	Orders []Order `json:"-"`
}
