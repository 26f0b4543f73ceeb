package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"brewery/internal/models"
)

// MemoryBeerRepository is an in-memory implementation of BeerRepository.
type MemoryBeerRepository struct {
	beers  map[int]models.Beer
	nextID int
	mu     sync.RWMutex
}

// NewMemoryBeerRepository creates a new instance of MemoryBeerRepository.
func NewMemoryBeerRepository() *MemoryBeerRepository {
	return &MemoryBeerRepository{
		beers:  make(map[int]models.Beer),
		nextID: 1,
	}
}

// FindByID returns a beer by its ID.
func (r *MemoryBeerRepository) FindByID(_ context.Context, id int) (*models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beer, ok := r.beers[id]
	if !ok {
		return nil, fmt.Errorf("beer with ID %d: %w", id, ErrBeerNotFound)
	}
	return &beer, nil
}

// FindByUpc returns a beer by its UPC.
func (r *MemoryBeerRepository) FindByUpc(_ context.Context, upc string) (*models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, beer := range r.beers {
		if beer.Upc == upc {
			return &beer, nil
		}
	}
	return nil, fmt.Errorf("beer with UPC %s: %w", upc, ErrBeerNotFound)
}

// FindAll returns one page of matching beers ordered by ID.
func (r *MemoryBeerRepository) FindAll(_ context.Context, filter models.BeerFilter, page models.PageRequest) ([]models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Beer, 0, len(r.beers))
	for _, beer := range r.beers {
		if filter.BeerName != "" && beer.BeerName != filter.BeerName {
			continue
		}
		if filter.BeerStyle != "" && beer.BeerStyle != filter.BeerStyle {
			continue
		}
		matched = append(matched, beer)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := page.Offset()
	if start >= len(matched) {
		return []models.Beer{}, nil
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

// Count returns the number of stored beers.
func (r *MemoryBeerRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.beers)), nil
}

// Create adds a new beer, assigning its ID and timestamps.
func (r *MemoryBeerRepository) Create(_ context.Context, beer *models.Beer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upcTaken(beer.Upc, 0) {
		return fmt.Errorf("failed to create beer %q: %w", beer.Upc, ErrDuplicateUpc)
	}
	now := time.Now()
	beer.ID = r.nextID
	r.nextID++
	beer.CreatedDate = now
	beer.LastModifiedDate = now
	r.beers[beer.ID] = *beer
	return nil
}

// Update replaces an existing beer and refreshes its modification time.
func (r *MemoryBeerRepository) Update(_ context.Context, beer *models.Beer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.beers[beer.ID]
	if !ok {
		return fmt.Errorf("beer with ID %d not found for update: %w", beer.ID, ErrBeerNotFound)
	}
	if r.upcTaken(beer.Upc, beer.ID) {
		return fmt.Errorf("failed to update beer %d: %w", beer.ID, ErrDuplicateUpc)
	}
	beer.CreatedDate = existing.CreatedDate
	beer.LastModifiedDate = time.Now()
	r.beers[beer.ID] = *beer
	return nil
}

// DeleteByID removes a beer by its ID.
func (r *MemoryBeerRepository) DeleteByID(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.beers, id)
	return nil
}

func (r *MemoryBeerRepository) upcTaken(upc string, exceptID int) bool {
	if upc == "" {
		return false
	}
	for id, beer := range r.beers {
		if id != exceptID && beer.Upc == upc {
			return true
		}
	}
	return false
}
