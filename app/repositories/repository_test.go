package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/vendoz/app/db/testdb"
	"github.com/Rakhulsr/vendoz/app/helpers"
	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserCreateNormalizesEmail(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	hash, err := helpers.HashPassword("plain-secret")
	require.NoError(t, err)
	user := &models.User{FullName: "Jane", Email: "  Jane@Vendoz.TEST ", Password: hash}
	require.NoError(t, repo.Create(ctx, user))

	stored, err := repo.FindByEmail(ctx, "jane@vendoz.test")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, hash, stored.Password)
	assert.Equal(t, models.RoleCustomer, stored.Role)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{FullName: "A", Email: "dup@vendoz.test", Password: "secret1"}))
	err := repo.Create(ctx, &models.User{FullName: "B", Email: "DUP@vendoz.test", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserUpdateAndDelete(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	user := &models.User{FullName: "Jane", Email: "update@vendoz.test", Password: "hash-one"}
	require.NoError(t, repo.Create(ctx, user))

	user.FullName = "Jane Doe"
	user.Email = "Jane.Doe@Vendoz.test"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.FullName)
	assert.Equal(t, "jane.doe@vendoz.test", stored.Email)
	assert.Equal(t, "hash-one", stored.Password)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	missing, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDecrementStock(t *testing.T) {
	db := testdb.Open(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &models.Product{Name: "Shirt", Price: decimal.NewFromInt(20), Cost: decimal.NewFromInt(8), Stock: 3}
	require.NoError(t, repo.Create(ctx, product))

	err := db.Transaction(func(tx *gorm.DB) error {
		applied, err := repo.DecrementStock(ctx, tx, product.ID, 2)
		require.NoError(t, err)
		assert.True(t, applied)

		_, err = repo.DecrementStock(ctx, tx, product.ID, 2)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		applied, err = repo.DecrementStock(ctx, tx, "missing", 1)
		require.NoError(t, err)
		assert.False(t, applied)
		return nil
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock)
	assert.Equal(t, models.CategoryMen, stored.Category)
}

func TestCartAddAndRemove(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	carts := NewCartRepository(db)
	items := NewCartItemRepository(db)
	products := NewProductRepository(db)

	product := &models.Product{Name: "Hat", Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(4), Stock: 9}
	require.NoError(t, products.Create(ctx, product))

	cart, err := carts.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	again, err := carts.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	require.NoError(t, items.Add(ctx, &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}))

	loaded, err := carts.GetCartWithItems(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "Hat", loaded.Items[0].Product.Name)

	removed, err := items.Delete(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestCartDeleteRemovesItems(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	carts := NewCartRepository(db)
	items := NewCartItemRepository(db)

	cart, err := carts.GetOrCreate(ctx, "user-2")
	require.NoError(t, err)
	require.NoError(t, items.Add(ctx, &models.CartItem{CartID: cart.ID, ProductID: "product-1", Quantity: 1}))

	require.NoError(t, carts.Delete(ctx, cart.ID))

	gone, err := carts.GetByUserID(ctx, "user-2")
	require.NoError(t, err)
	assert.Nil(t, gone)
	var left int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&left).Error)
	assert.Zero(t, left)
}
