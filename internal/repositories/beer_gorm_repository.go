package repositories

import (
	"context"
	"errors"
	"fmt"

	"brewery/internal/models"

	"gorm.io/gorm"
)

// GORMBeerRepository is a GORM implementation of BeerRepository.
type GORMBeerRepository struct {
	db *gorm.DB
}

// NewGORMBeerRepository creates a new instance of GORMBeerRepository.
func NewGORMBeerRepository(db *gorm.DB) *GORMBeerRepository {
	return &GORMBeerRepository{
		db: db,
	}
}

// FindByID retrieves a single beer by its primary key.
func (r *GORMBeerRepository) FindByID(ctx context.Context, id int) (*models.Beer, error) {
	var beer models.Beer
	if err := r.db.WithContext(ctx).First(&beer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("beer with ID %d: %w", id, ErrBeerNotFound)
		}
		return nil, fmt.Errorf("failed to get beer by ID %d: %w", id, err)
	}
	return &beer, nil
}

// FindByUpc retrieves a single beer by exact UPC match.
func (r *GORMBeerRepository) FindByUpc(ctx context.Context, upc string) (*models.Beer, error) {
	var beer models.Beer
	if err := r.db.WithContext(ctx).First(&beer, "upc = ?", upc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("beer with UPC %s: %w", upc, ErrBeerNotFound)
		}
		return nil, fmt.Errorf("failed to get beer by UPC %s: %w", upc, err)
	}
	return &beer, nil
}

// FindAll retrieves one page of beers matching the filter.
func (r *GORMBeerRepository) FindAll(ctx context.Context, filter models.BeerFilter, page models.PageRequest) ([]models.Beer, error) {
	query := r.db.WithContext(ctx).Model(&models.Beer{})
	if filter.BeerName != "" {
		query = query.Where("beer_name = ?", filter.BeerName)
	}
	if filter.BeerStyle != "" {
		query = query.Where("beer_style = ?", filter.BeerStyle)
	}

	beers := make([]models.Beer, 0, page.PageSize)
	err := query.Order("id").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&beers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	return beers, nil
}

// Count returns the number of stored beers.
func (r *GORMBeerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Beer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count beers: %w", err)
	}
	return count, nil
}

// Create inserts a new beer; the database assigns the ID and timestamps.
func (r *GORMBeerRepository) Create(ctx context.Context, beer *models.Beer) error {
	if err := r.db.WithContext(ctx).Create(beer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create beer %q: %w", beer.Upc, ErrDuplicateUpc)
		}
		return fmt.Errorf("failed to create beer: %w", err)
	}
	return nil
}

// Update writes every column of an existing beer.
func (r *GORMBeerRepository) Update(ctx context.Context, beer *models.Beer) error {
	if err := r.db.WithContext(ctx).Save(beer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to update beer %d: %w", beer.ID, ErrDuplicateUpc)
		}
		return fmt.Errorf("failed to update beer %d: %w", beer.ID, err)
	}
	return nil
}

// DeleteByID physically removes a beer. Deleting a missing beer is not an error.
func (r *GORMBeerRepository) DeleteByID(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&models.Beer{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete beer %d: %w", id, err)
	}
	return nil
}
