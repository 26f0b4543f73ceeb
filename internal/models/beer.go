package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BeerStyle is the category a beer is brewed in.
type BeerStyle string

const (
	BeerStyleLager   BeerStyle = "LAGER"
	BeerStylePilsner BeerStyle = "PILSNER"
	BeerStyleStout   BeerStyle = "STOUT"
	BeerStyleGose    BeerStyle = "GOSE"
	BeerStylePorter  BeerStyle = "PORTER"
	BeerStyleAle     BeerStyle = "ALE"
	BeerStyleWheat   BeerStyle = "WHEAT"
	BeerStyleIPA     BeerStyle = "IPA"
	BeerStylePaleAle BeerStyle = "PALE_ALE"
	BeerStyleSaison  BeerStyle = "SAISON"
)

// BeerStyles lists every known style in declaration order.
var BeerStyles = []BeerStyle{
	BeerStyleLager, BeerStylePilsner, BeerStyleStout, BeerStyleGose, BeerStylePorter,
	BeerStyleAle, BeerStyleWheat, BeerStyleIPA, BeerStylePaleAle, BeerStyleSaison,
}

// ErrInvalidBeerStyle is returned when text does not name a known BeerStyle.
var ErrInvalidBeerStyle = errors.New("invalid beer style")

// ParseBeerStyle converts text such as "IPA" or "pale_ale" into a BeerStyle.
func ParseBeerStyle(s string) (BeerStyle, error) {
	candidate := BeerStyle(strings.ToUpper(strings.TrimSpace(s)))
	for _, style := range BeerStyles {
		if style == candidate {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBeerStyle, s)
}

func (s BeerStyle) String() string {
	return string(s)
}

// Beer represents a beer record in the inventory table. A UPC is optional;
// non-empty UPCs are unique.
type Beer struct {
	ID               int             `gorm:"primaryKey;autoIncrement"`
	BeerName         string          `gorm:"type:varchar(255);not null;index"`
	BeerStyle        BeerStyle       `gorm:"type:varchar(32);not null;index"`
	Upc              string          `gorm:"type:varchar(32);uniqueIndex:idx_beer_upc,where:upc <> ''"`
	Price            decimal.Decimal `gorm:"type:decimal(19,2)"`
	QuantityOnHand   int
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name used by GORM.
func (Beer) TableName() string {
	return "beer"
}
