package mappers_test

import (
	"errors"
	"testing"
	"time"

	"brewery/internal/mappers"
	"brewery/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeerToDto(t *testing.T) {
	now := time.Now()
	beer := &models.Beer{
		ID:               7,
		BeerName:         "Mango Bobs",
		BeerStyle:        models.BeerStyleAle,
		Upc:              "0631234200036",
		Price:            decimal.RequireFromString("12.95"),
		QuantityOnHand:   144,
		CreatedDate:      now,
		LastModifiedDate: now,
	}

	dto := mappers.BeerToDto(beer, false)
	assert.Equal(t, 7, dto.ID)
	assert.Equal(t, "Mango Bobs", dto.BeerName)
	assert.Equal(t, "ALE", dto.BeerStyle)
	assert.Equal(t, "0631234200036", dto.Upc)
	assert.True(t, dto.Price.Equal(decimal.RequireFromString("12.95")))
	assert.Nil(t, dto.QuantityOnHand, "quantity must be omitted unless requested")
	require.NotNil(t, dto.CreatedDate)
	assert.True(t, dto.CreatedDate.Equal(now))

	withInventory := mappers.BeerToDto(beer, true)
	require.NotNil(t, withInventory.QuantityOnHand)
	assert.Equal(t, 144, *withInventory.QuantityOnHand)

	assert.Nil(t, mappers.BeerToDto(nil, true))
}

func TestBeerToDto_EmptyRecordHasNoIdentity(t *testing.T) {
	dto := mappers.BeerToDto(&models.Beer{}, false)
	assert.False(t, dto.HasID())
	assert.Nil(t, dto.CreatedDate)
	assert.Nil(t, dto.LastUpdatedDate)
}

func TestDtoToBeer(t *testing.T) {
	dto := &models.BeerDto{
		ID:        99,
		BeerName:  "Rumpis favs",
		BeerStyle: "ipa",
		Upc:       "123123321",
		Price:     decimal.RequireFromString("6.99"),
	}

	beer, err := mappers.DtoToBeer(dto)
	require.NoError(t, err)
	assert.Zero(t, beer.ID, "identity is assigned by the store")
	assert.Equal(t, models.BeerStyleIPA, beer.BeerStyle)
	assert.Equal(t, "Rumpis favs", beer.BeerName)
	assert.Equal(t, "123123321", beer.Upc)

	_, err = mappers.DtoToBeer(&models.BeerDto{BeerName: "x", BeerStyle: "Apa"})
	assert.True(t, errors.Is(err, models.ErrInvalidBeerStyle))
}

func TestApplyDto(t *testing.T) {
	beer := &models.Beer{ID: 3, BeerName: "Old", BeerStyle: models.BeerStyleLager, Upc: "1", QuantityOnHand: 12}
	err := mappers.ApplyDto(beer, &models.BeerDto{BeerName: "New Name Son", BeerStyle: "PALE_ALE", Upc: "2", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, 3, beer.ID)
	assert.Equal(t, "New Name Son", beer.BeerName)
	assert.Equal(t, models.BeerStylePaleAle, beer.BeerStyle)
	assert.Equal(t, "2", beer.Upc)
	assert.Equal(t, 12, beer.QuantityOnHand)

	err = mappers.ApplyDto(beer, &models.BeerDto{BeerName: "x", BeerStyle: "CIDER"})
	assert.ErrorIs(t, err, models.ErrInvalidBeerStyle)
	assert.Equal(t, "New Name Son", beer.BeerName, "record is untouched on a bad style")
}
