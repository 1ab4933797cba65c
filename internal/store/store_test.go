package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

func setupStore(t *testing.T) (store.RepositoryManager, *bun.DB) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.CreateSchema(context.Background(), db))

	repo := store.NewRepositoryManager(db)
	require.NoError(t, repo.Validate())

	return repo, db
}

func seedProduct(t *testing.T, repo store.RepositoryManager, name, category string, discount int) *store.Product {
	t.Helper()

	record, err := repo.Products().Save(context.Background(), &store.Product{
		Name:               name,
		Price:              10.0,
		PriceEUR:           5.11,
		Category:           category,
		Stock:              5,
		DiscountPercentage: discount,
	})
	require.NoError(t, err)
	return record
}

func TestProducts_List(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	seedProduct(t, repo, "Spinning Rod Pro", "Rods", 0)
	seedProduct(t, repo, "Baitcast Reel", "Reels", 20)
	seedProduct(t, repo, "Carbon Rod Light", "Rods", 10)

	t.Run("no filter returns everything", func(t *testing.T) {
		records, err := repo.Products().List(ctx, store.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("category filter", func(t *testing.T) {
		records, err := repo.Products().List(ctx, store.ProductFilter{Category: "Rods"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		for _, p := range records {
			assert.Equal(t, "Rods", p.Category)
		}
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		records, err := repo.Products().List(ctx, store.ProductFilter{Search: "rod"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("discount only", func(t *testing.T) {
		records, err := repo.Products().List(ctx, store.ProductFilter{DiscountOnly: true})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		for _, p := range records {
			assert.Greater(t, p.DiscountPercentage, 0)
		}
	})

	t.Run("filters combine", func(t *testing.T) {
		records, err := repo.Products().List(ctx, store.ProductFilter{
			Category:     "Rods",
			DiscountOnly: true,
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Carbon Rod Light", records[0].Name)
	})
}

func TestProducts_CRUD(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	created := seedProduct(t, repo, "Feeder Rod", "Rods", 0)
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("get by id", func(t *testing.T) {
		record, err := repo.Products().GetByProductID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Feeder Rod", record.Name)
	})

	t.Run("get missing id", func(t *testing.T) {
		_, err := repo.Products().GetByProductID(ctx, uuid.New().String())
		assert.Error(t, err)
	})

	t.Run("replace keeps id and created_at", func(t *testing.T) {
		updated, err := repo.Products().Replace(ctx, created.ID.String(), &store.Product{
			Name:     "Feeder Rod XL",
			Price:    15.0,
			PriceEUR: 7.67,
			Category: "Rods",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Feeder Rod XL", updated.Name)

		record, err := repo.Products().GetByProductID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Feeder Rod XL", record.Name)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repo.Products().Remove(ctx, created.ID.String()))

		_, err := repo.Products().GetByProductID(ctx, created.ID.String())
		assert.Error(t, err)

		err = repo.Products().Remove(ctx, created.ID.String())
		assert.Error(t, err)
	})
}

func TestProducts_DistinctCategories(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	seedProduct(t, repo, "Rod A", "Rods", 0)
	seedProduct(t, repo, "Rod B", "Rods", 0)
	seedProduct(t, repo, "Reel A", "Reels", 0)

	categories, err := repo.Products().DistinctCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Rods", "Reels"}, categories)
}

func TestOrders(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	userID := uuid.New()

	newOrder := func(uid *uuid.UUID) *store.Order {
		order := &store.Order{
			UserID: uid,
			Items: []store.OrderItem{
				{ProductID: uuid.New().String(), ProductName: "Rod", ProductPrice: 10.0, Quantity: 2},
				{ProductID: uuid.New().String(), ProductName: "Reel", ProductPrice: 25.5, Quantity: 1},
			},
			ShippingName:    "Ivan Ivanov",
			ShippingPhone:   "+359888123456",
			ShippingAddress: "ul. Ribarska 1",
			ShippingCity:    "Varna",
		}
		order.Total = order.ComputeTotal()
		return order
	}

	t.Run("place fills defaults and computes total", func(t *testing.T) {
		record, err := repo.Orders().Place(ctx, newOrder(&userID))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, record.ID)
		assert.Equal(t, store.OrderStatusPending, record.Status)
		assert.Equal(t, store.PaymentCashOnDelivery, record.PaymentMethod)
		assert.InDelta(t, 45.5, record.Total, 0.001)
	})

	t.Run("guest order has no user", func(t *testing.T) {
		record, err := repo.Orders().Place(ctx, newOrder(nil))
		require.NoError(t, err)
		assert.Nil(t, record.UserID)
	})

	t.Run("items survive the round trip", func(t *testing.T) {
		placed, err := repo.Orders().Place(ctx, newOrder(&userID))
		require.NoError(t, err)

		record, err := repo.Orders().GetByOrderID(ctx, placed.ID.String())
		require.NoError(t, err)
		require.Len(t, record.Items, 2)
		assert.Equal(t, "Rod", record.Items[0].ProductName)
		assert.Equal(t, 2, record.Items[0].Quantity)
	})

	t.Run("list by user excludes other orders", func(t *testing.T) {
		otherID := uuid.New()
		_, err := repo.Orders().Place(ctx, newOrder(&otherID))
		require.NoError(t, err)

		records, err := repo.Orders().ListByUser(ctx, otherID.String())
		require.NoError(t, err)
		assert.Len(t, records, 1)

		all, err := repo.Orders().ListAll(ctx)
		require.NoError(t, err)
		assert.Greater(t, len(all), 1)
	})

	t.Run("update status", func(t *testing.T) {
		placed, err := repo.Orders().Place(ctx, newOrder(&userID))
		require.NoError(t, err)

		require.NoError(t, repo.Orders().UpdateStatus(ctx, placed.ID.String(), store.OrderStatusShipped))

		record, err := repo.Orders().GetByOrderID(ctx, placed.ID.String())
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusShipped, record.Status)
	})

	t.Run("update status of missing order", func(t *testing.T) {
		err := repo.Orders().UpdateStatus(ctx, uuid.New().String(), store.OrderStatusShipped)
		assert.Error(t, err)
	})
}

func TestChatMessages(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := repo.ChatMessages().Post(ctx, &store.ChatMessage{
			Nickname: "fisher",
			Message:  text,
		})
		require.NoError(t, err)
	}

	t.Run("recent returns oldest first", func(t *testing.T) {
		records, err := repo.ChatMessages().Recent(ctx, 100)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "first", records[0].Message)
		assert.Equal(t, "third", records[2].Message)
	})

	t.Run("limit keeps the newest messages", func(t *testing.T) {
		records, err := repo.ChatMessages().Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "second", records[0].Message)
		assert.Equal(t, "third", records[1].Message)
	})
}

func TestUsersRepository(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	t.Run("register and fetch", func(t *testing.T) {
		created, err := repo.Users().Register(ctx, &auth.User{
			Email:        "User@Example.com",
			Name:         "Test User",
			PasswordHash: "$2a$10$fakefakefakefakefakefake",
		})
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", created.Email)
		assert.Equal(t, auth.RoleUser, created.Role)

		record, err := repo.Users().GetByEmail(ctx, "USER@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, record.ID)

		byID, err := repo.Users().GetByUserID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created.Email, byID.Email)
	})

	t.Run("duplicate email hits the unique index", func(t *testing.T) {
		_, err := repo.Users().Register(ctx, &auth.User{
			Email:        "dup@example.com",
			Name:         "First",
			PasswordHash: "hash",
		})
		require.NoError(t, err)

		_, err = repo.Users().Register(ctx, &auth.User{
			Email:        "DUP@example.com",
			Name:         "Second",
			PasswordHash: "hash",
		})
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})
}

func TestSeed(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	hasher := auth.NewPasswordHasher(4)
	opts := store.SeedOptions{
		AdminEmail:    "admin@example.com",
		AdminName:     "Admin",
		AdminPassword: "admin-secret",
	}

	require.NoError(t, store.Seed(ctx, repo, hasher, opts))

	admin, err := repo.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, admin.Role)
	assert.NoError(t, hasher.ComparePasswordAndHash("admin-secret", admin.PasswordHash))

	products, err := repo.Products().List(ctx, store.ProductFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	// Running the seed twice must not duplicate anything.
	require.NoError(t, store.Seed(ctx, repo, hasher, opts))

	again, err := repo.Products().List(ctx, store.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, again, len(products))
}
