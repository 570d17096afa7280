package service

import (
	"context"
	"fmt"

	"github.com/plushmarket/storefront/internal/cache"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

// CartService holds the caller's cart in the store and derives its priced
// view against the current catalog.
type CartService struct {
	carts   store.CartClient
	catalog *CatalogService
	cache   *cache.Cache
}

func NewCartService(carts store.CartClient, catalog *CatalogService, c *cache.Cache) *CartService {
	return &CartService{carts: carts, catalog: catalog, cache: c}
}

type cartKey struct {
	productID int64
	variant   string
}

// Aggregate joins cart lines against the catalog. Lines whose product no
// longer exists are stale references and are dropped, not errors. Lines
// sharing a (product, variant) key coalesce into one. Pure: the same inputs
// always yield the same priced view and total.
func Aggregate(lines []model.CartLine, products []model.Product) ([]model.PricedLine, int64) {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	index := make(map[cartKey]int)
	var priced []model.PricedLine
	var total int64

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		key := cartKey{line.ProductID, line.Variant}
		if i, seen := index[key]; seen {
			priced[i].Quantity += line.Quantity
			priced[i].LineTotal += product.Price * line.Quantity
		} else {
			index[key] = len(priced)
			priced = append(priced, model.PricedLine{
				CartLine:  line,
				Product:   product,
				LineTotal: product.Price * line.Quantity,
			})
		}
		total += product.Price * line.Quantity
	}
	return priced, total
}

// Get returns the caller's priced cart and its total.
func (s *CartService) Get(ctx context.Context, sess Session) ([]model.PricedLine, int64, error) {
	if !sess.Authenticated() {
		return nil, 0, ErrNotAuthenticated
	}

	lines, err := s.rawLines(ctx, sess.Caller)
	if err != nil {
		return nil, 0, err
	}
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	priced, total := Aggregate(lines, products)
	return priced, total, nil
}

func (s *CartService) AddLine(ctx context.Context, sess Session, line model.CartLine) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if line.Variant == "" {
		line.Variant = "default"
	}

	if err := s.carts.AddToCart(ctx, sess.Caller, line); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	s.invalidateCart(ctx, sess.Caller)
	return nil
}

func (s *CartService) RemoveLine(ctx context.Context, sess Session, productID int64) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if err := s.carts.RemoveFromCart(ctx, sess.Caller, productID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	s.invalidateCart(ctx, sess.Caller)
	return nil
}

// InvalidateCart drops the cached cart for a caller; the checkout
// orchestrator calls this after a completed payment.
func (s *CartService) InvalidateCart(ctx context.Context, caller string) {
	s.invalidateCart(ctx, caller)
}

func (s *CartService) rawLines(ctx context.Context, caller string) ([]model.CartLine, error) {
	if s.cache != nil {
		var lines []model.CartLine
		if err := s.cache.Get(ctx, cache.CartKey(caller), &lines); err == nil {
			return lines, nil
		}
	}

	lines, err := s.carts.GetCart(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.CartKey(caller), lines)
	}
	return lines, nil
}

func (s *CartService) invalidateCart(ctx context.Context, caller string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cache.CartKey(caller))
	}
}
