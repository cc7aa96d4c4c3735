package services

import (
	"github.com/sirupsen/logrus"

	"productpanel/internal/models"
	"productpanel/internal/repositories"
	"productpanel/pkg/rabbitmq"
)

// DefaultPageSize is the fixed page size of the admin listing.
const DefaultPageSize = 10

// ProductPage bundles one page of products with its pagination metadata.
type ProductPage struct {
	Products      []models.Product
	CurrentPage   int
	TotalPages    int
	TotalProducts int64
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
	pageSize int
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case change events are not published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
		pageSize: DefaultPageSize,
	}
}

// ListPage retrieves one page of the catalog in natural order.
func (s *ProductService) ListPage(page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	products, err := s.repo.List(page, s.pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	return s.newPage(products, page, total), nil
}

// SearchPage retrieves one page of products whose name or description
// contains term as a case-insensitive substring.
func (s *ProductService) SearchPage(term string, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	products, err := s.repo.Search(term, page, s.pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountSearch(term)
	if err != nil {
		return nil, err
	}
	return s.newPage(products, page, total), nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct inserts a new product built from the validated input.
func (s *ProductService) CreateProduct(input *models.ProductInput) error {
	product := input.ToProduct()
	product.ID = 0 // the store assigns IDs
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.ProductCreated, product.ID)
	return nil
}

// UpdateProduct replaces every field of the product with the given ID.
func (s *ProductService) UpdateProduct(id uint, input *models.ProductInput) error {
	product := input.ToProduct()
	product.ID = id
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.ProductUpdated, id)
	return nil
}

// DeleteProduct removes the product with the given ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.ProductDeleted, id)
	return nil
}

// publishEvent emits a product change event. Publish failures are logged and
// never fail the originating request.
func (s *ProductService) publishEvent(kind string, id uint) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishProductEvent(kind, id); err != nil {
		logrus.Errorf("Failed to publish %s event for product %d: %v", kind, id, err)
	}
}

func (s *ProductService) newPage(products []models.Product, page int, total int64) *ProductPage {
	pageSize := int64(s.pageSize)
	return &ProductPage{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    int((total + pageSize - 1) / pageSize),
		TotalProducts: total,
	}
}
