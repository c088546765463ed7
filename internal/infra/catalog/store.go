// Package catalog provides an in-memory implementation of the product repository.
package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/repository"
)

// Store keeps products in a map keyed by id. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	products map[int64]*entity.Product
	nextID   int64
}

var _ repository.ProductRepository = (*Store)(nil)

// NewStore returns an empty store whose first product gets id 1.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]*entity.Product),
		nextID:   1,
	}
}

// List implements repository.ProductRepository.
func (s *Store) List(_ context.Context, filter repository.ProductFilter, offset, limit int) ([]*entity.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.collect(func(p *entity.Product) bool {
		if filter.Category != nil && p.Category != *filter.Category {
			return false
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			return false
		}

		return true
	})

	return page(matched, offset, limit), len(matched), nil
}

// Search implements repository.ProductRepository.
func (s *Store) Search(_ context.Context, query string, offset, limit int) ([]*entity.Product, int, error) {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.collect(func(p *entity.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			return true
		}

		return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
	})

	return page(matched, offset, limit), len(matched), nil
}

// FindByID implements repository.ProductRepository.
func (s *Store) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product.Clone(), nil
}

// Create implements repository.ProductRepository. It sets product.ID on success.
func (s *Store) Create(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(product.Name, 0) {
		return repository.ErrProductNameTaken
	}

	product.ID = s.nextID
	s.nextID++
	s.products[product.ID] = product.Clone()

	return nil
}

// Modify implements repository.ProductRepository.
func (s *Store) Modify(_ context.Context, id int64, fn func(product *entity.Product) error) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	updated := stored.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = id

	if !strings.EqualFold(updated.Name, stored.Name) && s.nameTaken(updated.Name, id) {
		return nil, repository.ErrProductNameTaken
	}

	s.products[id] = updated

	return updated.Clone(), nil
}

// Delete implements repository.ProductRepository.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)

	return nil
}

// Count implements repository.ProductRepository.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products), nil
}

// collect returns clones of the matching products ordered by id. Callers hold the lock.
func (s *Store) collect(match func(p *entity.Product) bool) []*entity.Product {
	result := make([]*entity.Product, 0, len(s.products))
	for _, product := range s.products {
		if match(product) {
			result = append(result, product.Clone())
		}
	}
	slices.SortFunc(result, func(a, b *entity.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return result
}

func (s *Store) nameTaken(name string, exceptID int64) bool {
	for id, product := range s.products {
		if id != exceptID && strings.EqualFold(product.Name, name) {
			return true
		}
	}

	return false
}

func page(items []*entity.Product, offset, limit int) []*entity.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []*entity.Product{}
	}

	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	return items[offset:end]
}
