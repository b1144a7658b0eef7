package service

import (
	"context"
	"fmt"

	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/store"
)

// hydrator resolves foreign-key references into full entities before a
// result leaves the service layer. Relationships are plain foreign keys in
// the stores; attaching the related entities here keeps the persistence
// model free of cyclic references.
type hydrator struct {
	accounts  store.AccountStore
	products  store.ProductStore
	cartItems store.CartItemStore
}

// product attaches the owner to p, and the owner's other products to the
// owner. The owner's back-references stop there to keep the graph acyclic.
func (h *hydrator) product(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	owner, err := h.accounts.GetByID(ctx, p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product owner: %w", err)
	}

	ownedProducts, err := h.products.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner's products: %w", err)
	}
	owner.Products = ownedProducts

	p.Owner = owner
	return p, nil
}

// cartItem attaches the product and the owner to the cart line.
func (h *hydrator) cartItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	product, err := h.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart item product: %w", err)
	}
	item.Product = product

	owner, err := h.accounts.GetByID(ctx, item.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart item owner: %w", err)
	}
	item.Owner = owner

	return item, nil
}

// account attaches the account's products (each carrying the account as
// owner) and its cart lines (each carrying its product).
func (h *hydrator) account(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	products, err := h.products.ListByOwner(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account products: %w", err)
	}
	for _, p := range products {
		p.Owner = a
	}
	a.Products = products

	items, err := h.cartItems.ListByOwner(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account cart: %w", err)
	}
	for _, item := range items {
		product, err := h.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cart line product: %w", err)
		}
		item.Product = product
	}
	a.Cart = items

	return a, nil
}
