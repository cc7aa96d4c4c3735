package services_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"productpanel/internal/models"
	"productpanel/internal/repositories"
	"productpanel/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(page, pageSize int) ([]models.Product, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Search(term string, page, pageSize int) ([]models.Product, error) {
	args := m.Called(term, page, pageSize)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) CountSearch(term string) (int64, error) {
	args := m.Called(term)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_ListPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: decimal.NewFromFloat(10.0)},
		{ID: 2, Name: "Product B", Price: decimal.NewFromFloat(20.0)},
	}

	mockRepo.On("List", 1, services.DefaultPageSize).Return(expectedProducts, nil).Once()
	mockRepo.On("Count").Return(int64(25), nil).Once()

	page, err := service.ListPage(1)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, page.Products)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalProducts)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListPage_ClampsPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Pages below 1 are treated as the first page.
	mockRepo.On("List", 1, services.DefaultPageSize).Return([]models.Product{}, nil).Once()
	mockRepo.On("Count").Return(int64(0), nil).Once()

	page, err := service.ListPage(-3)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, int64(0), page.TotalProducts)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListPage_RepoError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", 1, services.DefaultPageSize).Return([]models.Product(nil), fmt.Errorf("database error")).Once()

	page, err := service.ListPage(1)

	assert.Error(t, err)
	assert.Nil(t, page)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SearchPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 3, Name: "Red Mug", Price: decimal.NewFromFloat(9.99)},
	}

	mockRepo.On("Search", "red", 2, services.DefaultPageSize).Return(expectedProducts, nil).Once()
	mockRepo.On("CountSearch", "red").Return(int64(11), nil).Once()

	page, err := service.SearchPage("red", 2)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, page.Products)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(11), page.TotalProducts)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: decimal.NewFromFloat(10.0)}

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProduct(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	input := &models.ProductInput{
		ID:    42, // any client-supplied ID must be ignored on create
		Name:  "Mug",
		Price: "9.99",
	}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 0 && p.Name == "Mug" && p.Price.Equal(decimal.NewFromFloat(9.99))
	})).Return(nil).Once()

	err := service.CreateProduct(input)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure
	mockRepo.On("Create", mock.Anything).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(input)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	input := &models.ProductInput{Name: "Mug", Price: "12.5", InStock: true}

	// The ID argument wins over whatever the body carried.
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 7 && p.Name == "Mug" && p.InStock
	})).Return(nil).Once()

	err := service.UpdateProduct(7, input)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update of a missing product
	mockRepo.On("Update", mock.Anything).Return(repositories.ErrProductNotFound).Once()
	err = service.UpdateProduct(99, input)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Test successful deletion
	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err)

	// Test deletion of a missing product
	mockRepo.On("Delete", uint(99)).Return(repositories.ErrProductNotFound).Once()
	err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
