package service

import (
	"context"
	"fmt"

	"github.com/plushmarket/storefront/internal/cache"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

// CatalogService fronts the store's product catalog with a cached read path
// and admin-gated write passthroughs.
type CatalogService struct {
	catalog store.CatalogClient
	cache   *cache.Cache
}

func NewCatalogService(catalog store.CatalogClient, c *cache.Cache) *CatalogService {
	return &CatalogService{catalog: catalog, cache: c}
}

func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	if s.cache != nil {
		var products []model.Product
		if err := s.cache.Get(ctx, cache.CatalogKey(), &products); err == nil {
			return products, nil
		}
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.CatalogKey(), products)
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) Add(ctx context.Context, sess Session, p model.Product) (int64, error) {
	if !sess.IsAdmin() {
		return 0, ErrNotAuthorized
	}
	if err := validateProduct(p); err != nil {
		return 0, err
	}

	id, err := s.catalog.AddProduct(ctx, sess.Caller, p)
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return id, nil
}

func (s *CatalogService) Update(ctx context.Context, sess Session, p model.Product) error {
	if !sess.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	if err := s.catalog.UpdateProduct(ctx, sess.Caller, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) Remove(ctx context.Context, sess Session, id int64) error {
	if !sess.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.catalog.RemoveProduct(ctx, sess.Caller, id); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cache.CatalogKey())
	}
}

func validateProduct(p model.Product) error {
	if p.Name == "" || p.Price <= 0 {
		return ErrInvalidProduct
	}
	return nil
}
