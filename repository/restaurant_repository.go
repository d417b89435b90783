package repository

import (
	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) List() ([]entity.Restaurant, error) {
	var rs []entity.Restaurant
	err := r.DB.Order("name asc").Find(&rs).Error
	return rs, err
}

func (r *RestaurantRepository) FindWithMenus(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("Menus").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindMenu(menuID uint) (*entity.Menu, error) {
	var m entity.Menu
	if err := r.DB.First(&m, menuID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
