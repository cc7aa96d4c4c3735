package repositories

import (
	"strings"
	"sync"

	"productpanel/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Rows are kept in insertion order, matching the natural order a database
// returns without an ORDER BY.
type MockProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   uint
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{nextID: 1}
}

func pageOf(rows []models.Product, page, pageSize int) []models.Product {
	offset := (page - 1) * pageSize
	if offset < 0 || offset >= len(rows) {
		return []models.Product{}
	}
	end := offset + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]models.Product, end-offset)
	copy(out, rows[offset:end])
	return out
}

func matchesTerm(p models.Product, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term)
}

// List returns one page of products in insertion order.
func (r *MockProductRepository) List(page, pageSize int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return pageOf(r.products, page, pageSize), nil
}

// Count returns the total number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}

// Search returns one page of products matching term.
func (r *MockProductRepository) Search(term string, page, pageSize int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Product
	for _, p := range r.products {
		if matchesTerm(p, term) {
			matched = append(matched, p)
		}
	}
	return pageOf(matched, page, pageSize), nil
}

// CountSearch returns the total number of products matching term.
func (r *MockProductRepository) CountSearch(term string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, p := range r.products {
		if matchesTerm(p, term) {
			total++
		}
	}
	return total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Create adds a new product, assigning the next free ID.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products = append(r.products, *product)
	return nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return ErrProductNotFound
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}
