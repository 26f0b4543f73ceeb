package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BeerDto is the JSON representation of a beer exposed over HTTP.
// A zero ID means the beer has no identity, e.g. the result of updating a missing beer.
type BeerDto struct {
	ID              int             `json:"id,omitempty"`
	BeerName        string          `json:"beerName" validate:"notblank"`
	BeerStyle       string          `json:"beerStyle" validate:"notblank"`
	Upc             string          `json:"upc"`
	Price           decimal.Decimal `json:"price"`
	QuantityOnHand  *int            `json:"quantityOnHand,omitempty"`
	CreatedDate     *time.Time      `json:"createdDate,omitempty"`
	LastUpdatedDate *time.Time      `json:"lastUpdatedDate,omitempty"`
}

// HasID reports whether the dto refers to a stored beer.
func (d *BeerDto) HasID() bool {
	return d != nil && d.ID != 0
}
