package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()
	require.NoError(t, Seed(context.Background(), store))

	return store
}

func TestSeed(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	laptop, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", laptop.Name)
	assert.Equal(t, 1299.99, laptop.Price)
	assert.True(t, laptop.IsActive)

	headphones, err := store.FindByID(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "Audio", headphones.Category)
}

func TestStore_List(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()
	electronics := "Electronics"
	inactive := false

	tests := []struct {
		name      string
		filter    repository.ProductFilter
		offset    int
		limit     int
		wantIDs   []int64
		wantTotal int
	}{
		{name: "first page", offset: 0, limit: 3, wantIDs: []int64{1, 2, 3}, wantTotal: 8},
		{name: "last partial page", offset: 6, limit: 3, wantIDs: []int64{7, 8}, wantTotal: 8},
		{name: "offset past end", offset: 20, limit: 3, wantIDs: []int64{}, wantTotal: 8},
		{name: "category filter", filter: repository.ProductFilter{Category: &electronics}, offset: 0, limit: 100, wantIDs: []int64{1, 2, 3, 4, 6}, wantTotal: 5},
		{name: "active filter", filter: repository.ProductFilter{IsActive: &inactive}, offset: 0, limit: 100, wantIDs: []int64{}, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := store.List(ctx, tt.filter, tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			ids := make([]int64, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_Search(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	items, total, err := store.Search(ctx, "WIRELESS", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Wireless Mouse", items[0].Name)

	// "office" only appears as a category.
	items, total, err = store.Search(ctx, "office", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(7), items[0].ID)

	// "noise" matches the name and the description of the same product once.
	_, total, err = store.Search(ctx, "noise", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	product := &entity.Product{Name: "Standing Desk", Price: 499, Category: "Office", Stock: 3, IsActive: true}
	require.NoError(t, store.Create(ctx, product))
	assert.Equal(t, int64(9), product.ID)

	require.NoError(t, store.Delete(ctx, 9))

	next := &entity.Product{Name: "Desk Mat", Price: 19, Category: "Office"}
	require.NoError(t, store.Create(ctx, next))
	assert.Equal(t, int64(10), next.ID, "ids are never reused")
}

func TestStore_CreateRejectsDuplicateName(t *testing.T) {
	store := newSeededStore(t)

	err := store.Create(context.Background(), &entity.Product{Name: "laptop", Price: 1, Category: "X"})
	assert.ErrorIs(t, err, repository.ErrProductNameTaken)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	product, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	product.Name = "Mutated"
	*product.Description = "Mutated"

	again, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", again.Name)
	assert.Equal(t, "High-performance laptop for professionals", *again.Description)
}

func TestStore_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("applies changes", func(t *testing.T) {
		store := newSeededStore(t)

		updated, err := store.Modify(ctx, 2, func(p *entity.Product) error {
			p.Stock = 7
			p.ID = 99

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.ID)
		assert.Equal(t, 7, updated.Stock)
	})

	t.Run("callback error leaves product unchanged", func(t *testing.T) {
		store := newSeededStore(t)
		errStop := errors.New("stop")

		_, err := store.Modify(ctx, 2, func(p *entity.Product) error {
			p.Stock = 0

			return errStop
		})
		assert.ErrorIs(t, err, errStop)

		product, err := store.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 50, product.Stock)
	})

	t.Run("renaming onto another product fails", func(t *testing.T) {
		store := newSeededStore(t)

		_, err := store.Modify(ctx, 2, func(p *entity.Product) error {
			p.Name = "LAPTOP"

			return nil
		})
		assert.ErrorIs(t, err, repository.ErrProductNameTaken)
	})

	t.Run("changing case of own name is allowed", func(t *testing.T) {
		store := newSeededStore(t)

		updated, err := store.Modify(ctx, 1, func(p *entity.Product) error {
			p.Name = "LAPTOP"

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "LAPTOP", updated.Name)
	})

	t.Run("missing product", func(t *testing.T) {
		store := newSeededStore(t)

		_, err := store.Modify(ctx, 404, func(*entity.Product) error { return nil })
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 3))
	_, err := store.FindByID(ctx, 3)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.ErrorIs(t, store.Delete(ctx, 3), repository.ErrProductNotFound)
}

func TestStore_ConcurrentStockUpdates(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Modify(ctx, 2, func(p *entity.Product) error {
				p.Stock--

				return nil
			})
		}()
	}
	wg.Wait()

	product, err := store.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}
