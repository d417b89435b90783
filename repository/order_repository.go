package repository

import (
	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.DB.Create(o).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", id).Update("status", status).Error
}

// ListByStatus backs the driver job board.
func (r *OrderRepository) ListByStatus(status string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("status = ?", status).Order("created_at asc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}
