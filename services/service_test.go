package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one shared in-memory DB per test, named after the test so runs
	// never bleed into each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.Menu{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Wallet{}, &entity.Transaction{},
		&entity.Order{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Role: "customer"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}
