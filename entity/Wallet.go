package entity

import (
	"gorm.io/gorm"
)

type Wallet struct {
	gorm.Model
	UserID  uint    `gorm:"uniqueIndex" json:"userId"`
	User    User    `json:"-"`
	Balance float64 `gorm:"not null;default:0" json:"balance"`

	Transactions []Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
