package repositories

import (
	"context"
	"errors"

	"brewery/internal/models"
)

var (
	// ErrBeerNotFound is returned by point lookups that match no row.
	ErrBeerNotFound = errors.New("beer not found")
	// ErrDuplicateUpc is returned when a write would break UPC uniqueness.
	ErrDuplicateUpc = errors.New("beer with this upc already exists")
)

// BeerRepository defines the interface for beer data access.
type BeerRepository interface {
	FindByID(ctx context.Context, id int) (*models.Beer, error)
	FindByUpc(ctx context.Context, upc string) (*models.Beer, error)
	// FindAll returns one page of beers ordered by id. Empty filter fields are ignored.
	FindAll(ctx context.Context, filter models.BeerFilter, page models.PageRequest) ([]models.Beer, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, beer *models.Beer) error
	Update(ctx context.Context, beer *models.Beer) error
	// DeleteByID is a no-op when the beer does not exist.
	DeleteByID(ctx context.Context, id int) error
}
