package configs

import (
	"github.com/nori1700pm/ESD-FoodDelivery/entity"
)

// SeedRestaurants inserts a small browse catalogue on first boot.
func SeedRestaurants() error {
	var count int64
	if err := db.Model(&entity.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	restaurants := []entity.Restaurant{
		{
			Name:        "Nasi Lemak House",
			Description: "Coconut rice and sambal, all day",
			Address:     "80 Stamford Rd",
			Menus: []entity.Menu{
				{Name: "Nasi Lemak Ayam", Price: 6.5},
				{Name: "Nasi Lemak Special", Price: 8.0},
				{Name: "Teh Tarik", Price: 2.0},
			},
		},
		{
			Name:        "Wok & Roll",
			Description: "Fried rice and noodles",
			Address:     "90 Stamford Rd",
			Menus: []entity.Menu{
				{Name: "Shrimp Fried Rice", Price: 7.0},
				{Name: "Hokkien Mee", Price: 6.0},
			},
		},
		{
			Name:        "Green Bowl",
			Description: "Salads and grain bowls",
			Address:     "1 Victoria St",
			Menus: []entity.Menu{
				{Name: "Caesar Bowl", Price: 9.5},
				{Name: "Falafel Bowl", Price: 10.0},
			},
		},
	}

	return db.Create(&restaurants).Error
}
