package repositories

import (
	"errors"

	"productpanel/internal/models"
)

// ErrProductNotFound is returned when no product row matches the given ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(page, pageSize int) ([]models.Product, error)
	Count() (int64, error)
	Search(term string, page, pageSize int) ([]models.Product, error)
	CountSearch(term string) (int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
