package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brewery/internal/cache"
	"brewery/internal/mappers"
	"brewery/internal/models"
	"brewery/internal/repositories"
)

// ErrNotFound is returned when the requested beer does not exist.
var ErrNotFound = repositories.ErrBeerNotFound

const (
	listKeyPrefix = "beerList"
	idKeyPrefix   = "beer"
	upcKeyPrefix  = "beerUpc"
)

// Routing keys of the beer lifecycle events.
const (
	EventBeerCreated = "beer.created"
	EventBeerUpdated = "beer.updated"
	EventBeerDeleted = "beer.deleted"
)

// EventPublisher delivers serialized events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// BeerEvent is the message body published after every successful write.
type BeerEvent struct {
	Type       string    `json:"type"`
	BeerID     int       `json:"beerId"`
	Upc        string    `json:"upc,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// BeerService handles business logic related to beers.
type BeerService struct {
	repo      repositories.BeerRepository
	cache     *cache.Store
	publisher EventPublisher
	logger    *slog.Logger
}

// NewBeerService creates a new BeerService. store and publisher may be nil,
// which disables caching and event publication respectively.
func NewBeerService(repo repositories.BeerRepository, store *cache.Store, publisher EventPublisher, logger *slog.Logger) *BeerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BeerService{
		repo:      repo,
		cache:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// ListBeers returns one page of beers matching filter. Results are cached per
// filter and page unless showInventoryOnHand is set.
func (s *BeerService) ListBeers(ctx context.Context, filter models.BeerFilter, page models.PageRequest, showInventoryOnHand bool) (*models.BeerPagedList, error) {
	fetch := func(ctx context.Context) (*models.BeerPagedList, error) {
		beers, err := s.repo.FindAll(ctx, filter, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list beers: %w", err)
		}
		content := make([]models.BeerDto, 0, len(beers))
		for i := range beers {
			content = append(content, *mappers.BeerToDto(&beers[i], showInventoryOnHand))
		}
		return models.NewBeerPagedList(content, page, int64(len(content))), nil
	}

	if showInventoryOnHand || s.cache == nil {
		return fetch(ctx)
	}
	key := cache.Key(listKeyPrefix, filter.BeerName, filter.BeerStyle, page.PageNumber, page.PageSize)
	return cache.GetOrFetch(ctx, s.cache, key, fetch)
}

// GetByID returns a single beer. Lookups without inventory are cached by id.
func (s *BeerService) GetByID(ctx context.Context, id int, showInventoryOnHand bool) (*models.BeerDto, error) {
	fetch := func(ctx context.Context) (*models.BeerDto, error) {
		beer, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return mappers.BeerToDto(beer, showInventoryOnHand), nil
	}

	if showInventoryOnHand || s.cache == nil {
		return fetch(ctx)
	}
	return cache.GetOrFetch(ctx, s.cache, idKey(id), fetch)
}

// GetByUpc returns a single beer by UPC. The inventory is never included.
func (s *BeerService) GetByUpc(ctx context.Context, upc string) (*models.BeerDto, error) {
	fetch := func(ctx context.Context) (*models.BeerDto, error) {
		beer, err := s.repo.FindByUpc(ctx, upc)
		if err != nil {
			return nil, err
		}
		return mappers.BeerToDto(beer, false), nil
	}

	if s.cache == nil {
		return fetch(ctx)
	}
	return cache.GetOrFetch(ctx, s.cache, upcKey(upc), fetch)
}

// SaveNewBeer stores a new beer and returns it with its assigned id.
func (s *BeerService) SaveNewBeer(ctx context.Context, dto *models.BeerDto) (*models.BeerDto, error) {
	beer, err := mappers.DtoToBeer(dto)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, beer); err != nil {
		return nil, err
	}
	s.logger.Debug("saved new beer", "id", beer.ID, "upc", beer.Upc)

	s.evict(beer.ID, beer.Upc)
	s.publish(ctx, EventBeerCreated, beer)
	return mappers.BeerToDto(beer, false), nil
}

// UpdateBeer overwrites name, style, price and UPC of the beer with the given
// id. When no such beer exists nothing is stored and the returned dto has no
// identity.
func (s *BeerService) UpdateBeer(ctx context.Context, id int, dto *models.BeerDto) (*models.BeerDto, error) {
	beer, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrBeerNotFound):
		beer = &models.Beer{}
	case err != nil:
		return nil, err
	}

	previousUpc := beer.Upc
	if err := mappers.ApplyDto(beer, dto); err != nil {
		return nil, err
	}
	if beer.ID == 0 {
		s.logger.Debug("beer not found for update", "id", id)
		return mappers.BeerToDto(beer, false), nil
	}

	if err := s.repo.Update(ctx, beer); err != nil {
		return nil, err
	}
	s.evict(beer.ID, previousUpc, beer.Upc)
	s.publish(ctx, EventBeerUpdated, beer)
	return mappers.BeerToDto(beer, false), nil
}

// DeleteBeerByID deletes the beer if it exists. It does not report whether a
// row was removed.
func (s *BeerService) DeleteBeerByID(ctx context.Context, id int) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(idKey(id))
		s.cache.DeletePrefix(upcKeyPrefix + cache.KeySeparator)
		s.cache.DeletePrefix(listKeyPrefix + cache.KeySeparator)
	}
	s.publish(ctx, EventBeerDeleted, &models.Beer{ID: id})
	return nil
}

// DeleteBeerByIDStrict deletes the beer or returns ErrNotFound when there is
// nothing to delete.
func (s *BeerService) DeleteBeerByIDStrict(ctx context.Context, id int) error {
	beer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, beer.ID); err != nil {
		return err
	}
	s.evict(beer.ID, beer.Upc)
	s.publish(ctx, EventBeerDeleted, beer)
	return nil
}

// evict drops the keys a write touched. A read already fetching one of them
// can still store its pre-write result, which then lives until the TTL.
func (s *BeerService) evict(id int, upcs ...string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(idKey(id))
	for _, upc := range upcs {
		s.cache.Delete(upcKey(upc))
	}
	s.cache.DeletePrefix(listKeyPrefix + cache.KeySeparator)
}

func (s *BeerService) publish(ctx context.Context, eventType string, beer *models.Beer) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(BeerEvent{
		Type:       eventType,
		BeerID:     beer.ID,
		Upc:        beer.Upc,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to marshal beer event", "type", eventType, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, eventType, body); err != nil {
		s.logger.Warn("failed to publish beer event", "type", eventType, "id", beer.ID, "error", err)
	}
}

func idKey(id int) string {
	return cache.Key(idKeyPrefix, id)
}

func upcKey(upc string) string {
	return cache.Key(upcKeyPrefix, upc)
}
