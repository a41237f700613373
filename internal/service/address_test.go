package service

import (
	"context"
	"testing"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressService_CreateSetsDefaultPointer(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	customer := models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))

	svc := &AddressService{Repo: r}
	addr, err := svc.Create(ctx, customer.Code, transport.AddressRequest{
		Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, addr.IsDefault)

	got, err := r.CustomerByCode(ctx, customer.Code)
	require.NoError(t, err)
	require.NotNil(t, got.DefaultAddressID)
	assert.Equal(t, addr.ID, *got.DefaultAddressID)
}

func TestAddressService_Validation(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	customer := models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))
	svc := &AddressService{Repo: r}

	_, err := svc.Create(ctx, customer.Code, transport.AddressRequest{Pincode: "560001"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, customer.Code, transport.AddressRequest{Line1: "x", Pincode: "5600"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "C99999", transport.AddressRequest{Line1: "x", Pincode: "560001"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddressService_DeleteClearsDefault(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	customer := models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))
	svc := &AddressService{Repo: r}

	addr, err := svc.Create(ctx, customer.Code, transport.AddressRequest{
		Line1: "12 MG Road", Pincode: "560001", IsDefault: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.Code, addr.ID))

	got, err := r.CustomerByCode(ctx, customer.Code)
	require.NoError(t, err)
	assert.Nil(t, got.DefaultAddressID)

	assert.ErrorIs(t, svc.Delete(ctx, customer.Code, addr.ID), ErrNotFound)
}
