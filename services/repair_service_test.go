package services

import (
	"testing"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRepairService(t *testing.T) (*RepairService, *gorm.DB) {
	db := setupTestDB(t)
	return NewRepairService(db,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewCartRepository(db),
		100), db
}

func TestRepairProvisionsEverythingForFreshUser(t *testing.T) {
	svc, db := newRepairService(t)

	report := svc.Repair(42)
	assert.True(t, report.ProfileCreated)
	assert.True(t, report.WalletCreated)
	assert.True(t, report.CartCreated)
	assert.Empty(t, report.Errors)
	assert.True(t, report.Changed())

	var w entity.Wallet
	require.NoError(t, db.Where("user_id = ?", 42).First(&w).Error)
	assert.InDelta(t, 100.0, w.Balance, 1e-9) // nonzero starting grant

	var c entity.Cart
	require.NoError(t, db.Where("user_id = ?", 42).First(&c).Error)

	var u entity.User
	require.NoError(t, db.First(&u, 42).Error)
}

func TestRepairIsIdempotent(t *testing.T) {
	svc, db := newRepairService(t)

	first := svc.Repair(42)
	require.True(t, first.Changed())

	second := svc.Repair(42)
	assert.False(t, second.ProfileCreated)
	assert.False(t, second.WalletCreated)
	assert.False(t, second.CartCreated)
	assert.False(t, second.Changed())
	assert.Empty(t, second.Errors)

	// nothing duplicated
	var wallets, carts int64
	db.Model(&entity.Wallet{}).Where("user_id = ?", 42).Count(&wallets)
	db.Model(&entity.Cart{}).Where("user_id = ?", 42).Count(&carts)
	assert.EqualValues(t, 1, wallets)
	assert.EqualValues(t, 1, carts)
}

func TestRepairDoesNotTouchExistingWallet(t *testing.T) {
	svc, db := newRepairService(t)
	uid := createTestUser(t, db, "rich@example.com")

	_, _, err := svc.WalletRepo.GetOrCreate(uid, 500)
	require.NoError(t, err)

	report := svc.Repair(uid)
	assert.False(t, report.ProfileCreated)
	assert.False(t, report.WalletCreated)
	assert.True(t, report.CartCreated) // only the cart was missing

	var w entity.Wallet
	require.NoError(t, db.Where("user_id = ?", uid).First(&w).Error)
	assert.InDelta(t, 500.0, w.Balance, 1e-9)
}

func TestRepairPartialFailureDoesNotBlockOthers(t *testing.T) {
	svc, db := newRepairService(t)

	// break only the wallet check by dropping its table
	require.NoError(t, db.Migrator().DropTable(&entity.Wallet{}))

	report := svc.Repair(42)
	assert.True(t, report.ProfileCreated)
	assert.False(t, report.WalletCreated)
	assert.True(t, report.CartCreated)
	assert.NotEmpty(t, report.Errors)
}
