package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"productpanel/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// searchFilter matches the term against name and description. Both the column
// and the pattern go through SQL LOWER so the same case folding applies on
// either side whatever the driver; sqlite's LOWER only folds ASCII, and a
// pattern lowered in Go would miss non-ASCII text it contains verbatim.
const searchFilter = `LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\'`

// likePattern wraps term in wildcards for a substring match. Wildcards inside
// the term itself are escaped so they match literally.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// List retrieves one page of products in natural order.
func (r *GORMProductRepository) List(page, pageSize int) ([]models.Product, error) {
	var products []models.Product
	offset := (page - 1) * pageSize
	if err := r.db.Limit(pageSize).Offset(offset).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Count returns the total number of products.
func (r *GORMProductRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// Search retrieves one page of products whose name or description contains
// term as a case-insensitive substring.
func (r *GORMProductRepository) Search(term string, page, pageSize int) ([]models.Product, error) {
	var products []models.Product
	offset := (page - 1) * pageSize
	pattern := likePattern(term)
	err := r.db.Where(searchFilter, pattern, pattern).
		Limit(pageSize).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// CountSearch returns the total number of products matching term.
func (r *GORMProductRepository) CountSearch(term string) (int64, error) {
	var total int64
	pattern := likePattern(term)
	err := r.db.Model(&models.Product{}).
		Where(searchFilter, pattern, pattern).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count search results: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the store assigns the ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces every field of the stored row except the ID. The column
// list is explicit so zero values (empty description, out of stock)
// overwrite too.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{ID: product.ID}).
		Select("name", "description", "price", "image", "availability_date", "in_stock").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
