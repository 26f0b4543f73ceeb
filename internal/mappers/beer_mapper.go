package mappers

import (
	"fmt"

	"brewery/internal/models"
)

// BeerToDto maps a stored beer to its HTTP representation. The quantity on
// hand is only filled in when includeInventory is set.
func BeerToDto(beer *models.Beer, includeInventory bool) *models.BeerDto {
	if beer == nil {
		return nil
	}
	dto := &models.BeerDto{
		ID:        beer.ID,
		BeerName:  beer.BeerName,
		BeerStyle: beer.BeerStyle.String(),
		Upc:       beer.Upc,
		Price:     beer.Price,
	}
	if !beer.CreatedDate.IsZero() {
		created := beer.CreatedDate
		dto.CreatedDate = &created
	}
	if !beer.LastModifiedDate.IsZero() {
		updated := beer.LastModifiedDate
		dto.LastUpdatedDate = &updated
	}
	if includeInventory {
		qty := beer.QuantityOnHand
		dto.QuantityOnHand = &qty
	}
	return dto
}

// DtoToBeer maps an incoming dto to a new record. Identity and timestamps are
// left for the store to assign.
func DtoToBeer(dto *models.BeerDto) (*models.Beer, error) {
	style, err := models.ParseBeerStyle(dto.BeerStyle)
	if err != nil {
		return nil, fmt.Errorf("failed to map beer %q: %w", dto.BeerName, err)
	}
	beer := &models.Beer{
		BeerName:  dto.BeerName,
		BeerStyle: style,
		Upc:       dto.Upc,
		Price:     dto.Price,
	}
	if dto.QuantityOnHand != nil {
		beer.QuantityOnHand = *dto.QuantityOnHand
	}
	return beer, nil
}

// ApplyDto overwrites the mutable fields of beer from dto.
func ApplyDto(beer *models.Beer, dto *models.BeerDto) error {
	style, err := models.ParseBeerStyle(dto.BeerStyle)
	if err != nil {
		return fmt.Errorf("failed to map beer %q: %w", dto.BeerName, err)
	}
	beer.BeerName = dto.BeerName
	beer.BeerStyle = style
	beer.Price = dto.Price
	beer.Upc = dto.Upc
	return nil
}
