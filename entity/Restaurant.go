package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	ImageURL    string `json:"imageUrl"`

	Menus []Menu `json:"menus" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
