package repository

import (
	"errors"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) GetOrCreateCart(userID uint) (*entity.Cart, bool, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).Preload("Items").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, false, err
		}
		return &c, true, nil
	}
	return &c, false, err
}

// ReplaceItems rewrites the full item list of a cart. The whole list goes
// back on every mutation, last writer wins.
func (r *CartRepository) ReplaceItems(tx *gorm.DB, cartID uint, items []entity.CartItem) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].CartID = cartID
	}
	return tx.Create(&items).Error
}
