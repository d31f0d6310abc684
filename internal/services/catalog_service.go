package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// CatalogService carries the product administration rules: generated ids,
// unique live names, non-negative price and stock, soft deletes.
type CatalogService struct {
	products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.products.ListAvailable()
}

func (s *CatalogService) Create(name string, price decimal.Decimal, stock int) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if err := checkProduct(name, price, stock); err != nil {
		return domain.Product{}, err
	}
	taken, err := s.products.NameInUse(name, "")
	if err != nil {
		return domain.Product{}, err
	}
	if taken {
		return domain.Product{}, ErrNameTaken
	}
	return s.products.Create(name, price, stock)
}

func (s *CatalogService) Update(id, name string, price decimal.Decimal, stock int) error {
	name = strings.TrimSpace(name)
	if err := checkProduct(name, price, stock); err != nil {
		return err
	}
	taken, err := s.products.NameInUse(name, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}
	return s.products.Update(id, name, price, stock)
}

func (s *CatalogService) Delete(id string) error {
	return s.products.SoftDelete(id)
}

func checkProduct(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
