package seed

import (
	"context"
	"fmt"
	"log/slog"

	"brewery/internal/models"
	"brewery/internal/repositories"

	"github.com/shopspring/decimal"
)

// UPCs of the first demo beers, referenced by tests and API examples.
const (
	Beer1Upc = "0631234200036"
	Beer2Upc = "0631234300019"
	Beer3Upc = "0083783375213"
)

// Beers is the demo catalogue inserted into an empty store.
func Beers() []models.Beer {
	beer := func(name string, style models.BeerStyle, upc, price string, qty int) models.Beer {
		return models.Beer{
			BeerName:       name,
			BeerStyle:      style,
			Upc:            upc,
			Price:          decimal.RequireFromString(price),
			QuantityOnHand: qty,
		}
	}
	return []models.Beer{
		beer("Mango Bobs", models.BeerStyleAle, Beer1Upc, "12.95", 144),
		beer("Galaxy Cat", models.BeerStylePaleAle, Beer2Upc, "11.95", 96),
		beer("No Hammers On The Bar", models.BeerStyleWheat, Beer3Upc, "10.95", 72),
		beer("Blessed", models.BeerStyleStout, "4666337557578", "13.95", 48),
		beer("Adjunct Trail", models.BeerStyleStout, "8380495518610", "9.95", 120),
		beer("Very GGGreenn", models.BeerStyleIPA, "5677465691934", "14.95", 36),
		beer("Double Barrel Hunahpu's", models.BeerStyleStout, "5463533082885", "19.95", 24),
		beer("Very Hazy", models.BeerStyleIPA, "5339741428398", "12.45", 60),
		beer("SR-71", models.BeerStyleStout, "1726923962766", "11.45", 84),
		beer("Pliny the Younger", models.BeerStyleIPA, "8484957731774", "24.95", 12),
		beer("Blessed Trinity", models.BeerStyleSaison, "6266328524787", "10.45", 90),
		beer("King Krush", models.BeerStyleIPA, "7490217802727", "9.45", 108),
		beer("PBR", models.BeerStylePilsner, "8579613295827", "4.95", 240),
		beer("Pinball Porter", models.BeerStylePorter, "2318301340601", "8.95", 66),
		beer("Golden Budda", models.BeerStyleStout, "9401790633828", "10.95", 54),
		beer("Grand Central Red", models.BeerStyleLager, "4813896316225", "7.95", 132),
		beer("Pac-Man", models.BeerStyleStout, "3431272499891", "9.95", 42),
		beer("Ro Sham Bo", models.BeerStyleIPA, "2380867498485", "11.95", 78),
		beer("Summer Wheatly", models.BeerStyleWheat, "4323950503848", "8.45", 150),
		beer("Java Jill", models.BeerStyleLager, "4006016803570", "8.95", 102),
		beer("Bike Trail Pale", models.BeerStylePaleAle, "9883012356263", "9.45", 114),
		beer("Gose Gone Wild", models.BeerStyleGose, "0522017296420", "10.45", 30),
		beer("Cage Blond", models.BeerStyleAle, "3742135674832", "7.45", 180),
	}
}

// LoadBeers inserts the demo catalogue when the store holds no beers and
// reports how many were inserted.
func LoadBeers(ctx context.Context, repo repositories.BeerRepository, logger *slog.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check beer count: %w", err)
	}
	if count > 0 {
		logger.Debug("beer store already populated", "count", count)
		return 0, nil
	}

	beers := Beers()
	for i := range beers {
		if err := repo.Create(ctx, &beers[i]); err != nil {
			return i, fmt.Errorf("failed to seed beer %s: %w", beers[i].BeerName, err)
		}
	}
	logger.Info("seeded beer store", "count", len(beers))
	return len(beers), nil
}
