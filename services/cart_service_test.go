package services

import (
	"testing"

	"github.com/nori1700pm/ESD-FoodDelivery/entity"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*CartService, uint) {
	db := setupTestDB(t)
	uid := createTestUser(t, db, "cart@example.com")
	return NewCartService(db, repository.NewCartRepository(db)), uid
}

func add(menuID uint, name string, price float64, restID uint) AddItemIn {
	return AddItemIn{MenuID: menuID, Name: name, Price: price, RestaurantID: restID, RestaurantName: "Testaurant"}
}

func TestCartInitCreatesEmptyCart(t *testing.T) {
	svc, uid := newCartService(t)

	items, err := svc.Init(uid)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, Total(items))

	// second init loads the same cart instead of creating another
	_, err = svc.Init(uid)
	require.NoError(t, err)
	var count int64
	svc.DB.Model(&entity.Cart{}).Where("user_id = ?", uid).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCartAddMergesSameMenuAndRestaurant(t *testing.T) {
	svc, uid := newCartService(t)

	_, err := svc.AddItem(uid, add(7, "Laksa", 5.5, 1))
	require.NoError(t, err)
	items, err := svc.AddItem(uid, add(7, "Laksa", 5.5, 1))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 11.0, Total(items), 1e-9)
}

func TestCartAddSameMenuDifferentRestaurantIsNewLine(t *testing.T) {
	svc, uid := newCartService(t)

	_, err := svc.AddItem(uid, add(7, "Laksa", 5.5, 1))
	require.NoError(t, err)
	items, err := svc.AddItem(uid, add(7, "Laksa", 6.0, 2))
	require.NoError(t, err)

	assert.Len(t, items, 2)
}

func TestCartAddNormalisesMissingFields(t *testing.T) {
	svc, uid := newCartService(t)

	items, err := svc.AddItem(uid, AddItemIn{MenuID: 3, Price: -2, RestaurantID: 1})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Unknown Item", items[0].Name)
	assert.Equal(t, "Restaurant", items[0].RestaurantName)
	assert.Zero(t, items[0].Price)
}

func TestCartRemoveDecrementsThenDeletes(t *testing.T) {
	svc, uid := newCartService(t)

	_, err := svc.AddItem(uid, add(7, "Laksa", 5.5, 1))
	require.NoError(t, err)
	_, err = svc.AddItem(uid, add(7, "Laksa", 5.5, 1))
	require.NoError(t, err)

	items, err := svc.RemoveItem(uid, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	items, err = svc.RemoveItem(uid, 7)
	require.NoError(t, err)
	assert.Empty(t, items)

	// quantity never goes negative: removing again is a no-op
	items, err = svc.RemoveItem(uid, 7)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartTotalTracksMutationSequence(t *testing.T) {
	svc, uid := newCartService(t)

	_, _ = svc.AddItem(uid, add(1, "A", 2.0, 1))
	_, _ = svc.AddItem(uid, add(1, "A", 2.0, 1))
	_, _ = svc.AddItem(uid, add(2, "B", 3.5, 1))
	items, err := svc.RemoveItem(uid, 1)
	require.NoError(t, err)

	// 1x A (2.0) + 1x B (3.5)
	assert.InDelta(t, 5.5, Total(items), 1e-9)
	for _, it := range items {
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
}

func TestCartClearEmptiesAndPersists(t *testing.T) {
	svc, uid := newCartService(t)

	_, _ = svc.AddItem(uid, add(1, "A", 2.0, 1))
	require.NoError(t, svc.Clear(uid))

	items, err := svc.Init(uid)
	require.NoError(t, err)
	assert.Empty(t, items)

	var count int64
	svc.DB.Model(&entity.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestCartOpsNoOpWhenSignedOut(t *testing.T) {
	svc, _ := newCartService(t)

	items, err := svc.AddItem(0, add(1, "A", 2.0, 1))
	require.NoError(t, err)
	assert.Nil(t, items)

	_, err = svc.RemoveItem(0, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(0))

	var count int64
	svc.DB.Model(&entity.Cart{}).Count(&count)
	assert.Zero(t, count)
}
