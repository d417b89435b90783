package services

import (
	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr}
}

type AddItemIn struct {
	MenuID         uint    `json:"menuId" binding:"required"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	RestaurantID   uint    `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
}

// Init loads or creates the user's cart. On failure the caller gets an
// empty list plus the error, never a panic.
func (s *CartService) Init(userID uint) ([]entity.CartItem, error) {
	if userID == 0 {
		return []entity.CartItem{}, nil
	}
	c, _, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return []entity.CartItem{}, err
	}
	if c.Items == nil {
		return []entity.CartItem{}, nil
	}
	return c.Items, nil
}

// AddItem merges on (menu, restaurant): an existing line gets its
// quantity bumped, otherwise a new line is appended with quantity 1.
// Missing fields are normalised before persisting. No-op when signed out.
func (s *CartService) AddItem(userID uint, in AddItemIn) ([]entity.CartItem, error) {
	if userID == 0 {
		return nil, nil
	}

	if in.Name == "" {
		in.Name = "Unknown Item"
	}
	if in.Price < 0 {
		in.Price = 0
	}
	if in.RestaurantName == "" {
		in.RestaurantName = "Restaurant"
	}

	c, _, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	items := c.Items
	merged := false
	for i := range items {
		if items[i].MenuID == in.MenuID && items[i].RestaurantID == in.RestaurantID {
			items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, entity.CartItem{
			MenuID:         in.MenuID,
			Name:           in.Name,
			Price:          in.Price,
			Quantity:       1,
			RestaurantID:   in.RestaurantID,
			RestaurantName: in.RestaurantName,
		})
	}

	if err := s.writeBack(c.ID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem decrements the line for menuID and deletes it when the
// quantity reaches zero. No-op when signed out or the line is absent.
func (s *CartService) RemoveItem(userID, menuID uint) ([]entity.CartItem, error) {
	if userID == 0 {
		return nil, nil
	}

	c, _, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	items := c.Items
	for i := range items {
		if items[i].MenuID != menuID {
			continue
		}
		if items[i].Quantity > 1 {
			items[i].Quantity--
		} else {
			items = append(items[:i], items[i+1:]...)
		}
		if err := s.writeBack(c.ID, items); err != nil {
			return nil, err
		}
		break
	}
	return items, nil
}

// Clear empties the cart and persists the empty list.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return nil
	}
	c, _, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.writeBack(c.ID, nil)
}

// Total is the sum of price x quantity over the surviving lines.
func Total(items []entity.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// The remote side always receives the full list, then local state is
// refreshed from what was written.
func (s *CartService) writeBack(cartID uint, items []entity.CartItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ReplaceItems(tx, cartID, items)
	})
}
