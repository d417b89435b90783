package services

import (
	"testing"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDeliveryService(t *testing.T, balance float64) (*DeliveryService, *gorm.DB, uint) {
	db := setupTestDB(t)
	uid := createTestUser(t, db, "hungry@example.com")

	walletRepo := repository.NewWalletRepository(db)
	_, _, err := walletRepo.GetOrCreate(uid, balance)
	require.NoError(t, err)

	cartSvc := NewCartService(db, repository.NewCartRepository(db))
	walletSvc := NewWalletService(walletRepo, nil, nil)
	svc := NewDeliveryService(repository.NewOrderRepository(db), cartSvc, walletSvc)
	return svc, db, uid
}

func TestCreateOrderFromCart(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 6, RestaurantID: 3})
	require.NoError(t, err)
	_, err = svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 6, RestaurantID: 3})
	require.NoError(t, err)

	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, order.Price, 1e-9)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.EqualValues(t, 3, order.RestaurantID)

	// cart was cleared on order creation
	items, err := svc.CartSvc.Init(uid)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)

	_, err := svc.CreateOrder(uid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestPayDeliveryDebitsWallet(t *testing.T) {
	svc, db, uid := newDeliveryService(t, 100)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 30, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)

	out := svc.PayDelivery(uid, order.ID)
	assert.Equal(t, 200, out.Code)
	require.NotNil(t, out.Wallet)
	assert.InDelta(t, 70.0, out.Wallet.Balance, 1e-9)

	var reloaded entity.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, entity.OrderPaid, reloaded.Status)
}

func TestPayDeliveryInsufficientBalance(t *testing.T) {
	svc, db, uid := newDeliveryService(t, 5)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 30, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)

	out := svc.PayDelivery(uid, order.ID)
	assert.Equal(t, 400, out.Code)
	assert.Contains(t, out.Message, "insufficient balance")

	var reloaded entity.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, entity.OrderPending, reloaded.Status)
}

func TestPayDeliveryUnknownOrder(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)

	out := svc.PayDelivery(uid, 9999)
	assert.Equal(t, 400, out.Code)
	assert.Equal(t, "order not found", out.Message)
}

func TestPayDeliveryWrongCustomer(t *testing.T) {
	svc, db, uid := newDeliveryService(t, 100)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 10, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)

	other := createTestUser(t, db, "other@example.com")
	out := svc.PayDelivery(other, order.ID)
	assert.Equal(t, 403, out.Code)
}

func payForOrder(t *testing.T, svc *DeliveryService, uid uint, price float64) *entity.Order {
	t.Helper()
	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: price, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)
	require.Equal(t, 200, svc.PayDelivery(uid, order.ID).Code)
	return order
}

func TestCompleteDeliveryMarksOrderDelivered(t *testing.T) {
	svc, db, uid := newDeliveryService(t, 100)
	order := payForOrder(t, svc, uid, 30)

	done, err := svc.CompleteDelivery(order.ID, "sam@driver.fooddelivery.com")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, done.Status)

	var reloaded entity.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, entity.OrderDelivered, reloaded.Status)

	// a delivered order leaves the job board
	pending, err := svc.PendingDeliveries()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCompleteDeliveryRejectsUnpaidOrder(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 30, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)

	_, err = svc.CompleteDelivery(order.ID, "sam@driver.fooddelivery.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only paid orders")
}

func TestCompleteDeliveryIsNotRepeatable(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)
	order := payForOrder(t, svc, uid, 10)

	_, err := svc.CompleteDelivery(order.ID, "sam@driver.fooddelivery.com")
	require.NoError(t, err)
	_, err = svc.CompleteDelivery(order.ID, "sam@driver.fooddelivery.com")
	require.Error(t, err)
}

func TestCompleteDeliveryUnknownOrder(t *testing.T) {
	svc, _, _ := newDeliveryService(t, 100)

	_, err := svc.CompleteDelivery(9999, "sam@driver.fooddelivery.com")
	require.Error(t, err)
	assert.Equal(t, "order not found", err.Error())
}

func TestPayDeliveryRejectsDoublePayment(t *testing.T) {
	svc, _, uid := newDeliveryService(t, 100)

	_, err := svc.CartSvc.AddItem(uid, AddItemIn{MenuID: 1, Name: "Laksa", Price: 10, RestaurantID: 3})
	require.NoError(t, err)
	order, err := svc.CreateOrder(uid)
	require.NoError(t, err)

	require.Equal(t, 200, svc.PayDelivery(uid, order.ID).Code)
	out := svc.PayDelivery(uid, order.ID)
	assert.Equal(t, 400, out.Code)
	assert.Contains(t, out.Message, "already paid")
}
