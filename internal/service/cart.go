package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"gorm.io/gorm"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine is a cart item joined with its catalog listing.
type CartLine struct {
	ID       uint               `json:"id"`
	Quantity uint               `json:"quantity"`
	Food     models.FoodListing `json:"food"`
	Subtotal float64            `json:"subtotal"`
}

type CartView struct {
	Items  []CartLine           `json:"items"`
	Total  float64              `json:"total"`
	Vendor *transport.VendorRef `json:"vendor,omitempty"`
}

// Add puts a listing in the cart, enforcing the one-vendor-per-cart rule.
// On a vendor clash the structured MultiVendorError payload is returned so
// the client can offer to clear the cart.
func (s *CartService) Add(ctx context.Context, req transport.AddToCartRequest) (*CartView, *transport.MultiVendorError, error) {
	if req.Quantity == 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	customer, err := s.Repo.CustomerByCode(ctx, req.CustomerID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
	}
	if err != nil {
		return nil, nil, err
	}

	food, err := s.Repo.FoodListingByID(ctx, req.FoodID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("%w: food item %d", ErrNotFound, req.FoodID)
	}
	if err != nil {
		return nil, nil, err
	}
	if !food.IsAvailable {
		return nil, nil, fmt.Errorf("%w: %s is not available", ErrValidation, food.Name)
	}

	item := &models.CartItem{
		CustomerID:    customer.ID,
		FoodListingID: food.ID,
		Quantity:      req.Quantity,
	}
	if err := s.Repo.AddToCart(ctx, item, food.VendorID); err != nil {
		if errors.Is(err, repo.ErrMultiVendor) {
			payload, perr := s.multiVendorPayload(ctx, customer.ID, food.VendorID)
			if perr != nil {
				return nil, nil, perr
			}
			return nil, payload, nil
		}
		return nil, nil, err
	}

	view, err := s.View(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	return view, nil, nil
}

func (s *CartService) multiVendorPayload(ctx context.Context, customerID, newVendorID uint) (*transport.MultiVendorError, error) {
	currentID, err := s.Repo.CartVendorID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	current, err := s.Repo.VendorByID(ctx, currentID)
	if err != nil {
		return nil, err
	}
	next, err := s.Repo.VendorByID(ctx, newVendorID)
	if err != nil {
		return nil, err
	}

	return &transport.MultiVendorError{
		Error:         "MULTI_VENDOR_ERROR",
		Message:       "Your cart has items from another restaurant. Clear it to order from this one.",
		CurrentVendor: transport.VendorRef{ID: current.Code, Name: current.RestaurantName},
		NewVendor:     transport.VendorRef{ID: next.Code, Name: next.RestaurantName},
	}, nil
}

func (s *CartService) View(ctx context.Context, customerCode string) (*CartView, error) {
	customer, err := s.Repo.CustomerByCode(ctx, customerCode)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.Repo.GetCart(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		food, err := s.Repo.FoodListingByID(ctx, item.FoodListingID)
		if err != nil {
			return nil, err
		}
		line := CartLine{
			ID:       item.ID,
			Quantity: item.Quantity,
			Food:     *food,
			Subtotal: food.Price * float64(item.Quantity),
		}
		view.Total += line.Subtotal
		view.Items = append(view.Items, line)

		if view.Vendor == nil {
			vendor, err := s.Repo.VendorByID(ctx, food.VendorID)
			if err != nil {
				return nil, err
			}
			view.Vendor = &transport.VendorRef{ID: vendor.Code, Name: vendor.RestaurantName}
		}
	}
	return view, nil
}

func (s *CartService) Remove(ctx context.Context, customerCode string, itemID uint) error {
	customer, err := s.Repo.CustomerByCode(ctx, customerCode)
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
	}
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteCartItem(ctx, customer.ID, itemID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, customerCode string) error {
	customer, err := s.Repo.CustomerByCode(ctx, customerCode)
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
	}
	if err != nil {
		return err
	}
	return s.Repo.ClearCart(ctx, customer.ID)
}
