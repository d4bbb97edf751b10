package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/storefront/internal/domain"
)

func validAddressParams() domain.AddressParams {
	return domain.AddressParams{
		Recipient:  "Amara Mensah",
		Line1:      "12 Harbor Road",
		City:       "Takoradi",
		PostalCode: "WS-123",
	}
}

func TestAddressSingleDefault(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAddressService(store)
	const userID = int64(1)

	params := validAddressParams()
	params.IsDefault = true
	first, err := svc.Create(ctx, userID, params)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	// Creating a second default demotes the first.
	params.Line1 = "7 Market Street"
	second, err := svc.Create(ctx, userID, params)
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	addresses, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddressSetDefault(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAddressService(store)
	const userID = int64(1)

	params := validAddressParams()
	params.IsDefault = true
	first, err := svc.Create(ctx, userID, params)
	require.NoError(t, err)

	params.IsDefault = false
	params.Line1 = "7 Market Street"
	second, err := svc.Create(ctx, userID, params)
	require.NoError(t, err)

	promoted, err := svc.SetDefault(ctx, userID, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	got, err := store.GetAddressByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault, "previous default is demoted")
}

func TestAddressOwnership(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAddressService(store)

	owned, err := svc.Create(ctx, 1, validAddressParams())
	require.NoError(t, err)

	// Another user cannot see, change, or delete it.
	_, err = svc.Update(ctx, 2, owned.ID, validAddressParams())
	assert.ErrorIs(t, err, ErrAddressNotFound)

	err = svc.Delete(ctx, 2, owned.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = svc.SetDefault(ctx, 2, owned.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = store.GetAddressByID(ctx, owned.ID)
	assert.NoError(t, err)
}

func TestAddressValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAddressService(newFakeStore())

	_, err := svc.Create(ctx, 1, domain.AddressParams{Recipient: "Amara Mensah"})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestAddressDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAddressService(store)

	addr, err := svc.Create(ctx, 1, validAddressParams())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, addr.ID))

	addresses, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
