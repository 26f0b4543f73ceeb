package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"brewery/internal/cache"
	"brewery/internal/models"
	"brewery/internal/repositories"
	"brewery/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBeerRepository is a mock implementation of repositories.BeerRepository
type MockBeerRepository struct {
	mock.Mock
}

func (m *MockBeerRepository) FindByID(ctx context.Context, id int) (*models.Beer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Beer), args.Error(1)
}

func (m *MockBeerRepository) FindByUpc(ctx context.Context, upc string) (*models.Beer, error) {
	args := m.Called(ctx, upc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Beer), args.Error(1)
}

func (m *MockBeerRepository) FindAll(ctx context.Context, filter models.BeerFilter, page models.PageRequest) ([]models.Beer, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Beer), args.Error(1)
}

func (m *MockBeerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeerRepository) Create(ctx context.Context, beer *models.Beer) error {
	args := m.Called(ctx, beer)
	return args.Error(0)
}

func (m *MockBeerRepository) Update(ctx context.Context, beer *models.Beer) error {
	args := m.Called(ctx, beer)
	return args.Error(0)
}

func (m *MockBeerRepository) DeleteByID(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

var (
	ctx        = context.Background()
	quietLog   = slog.New(slog.NewTextHandler(io.Discard, nil))
	notFound   = fmt.Errorf("beer with ID 99: %w", repositories.ErrBeerNotFound)
	firstPage  = models.NewPageRequest(0, 25)
	galaxyCat  = models.Beer{ID: 1, BeerName: "Galaxy Cat", BeerStyle: models.BeerStylePaleAle, Upc: "0631234300019", Price: decimal.RequireFromString("11.95"), QuantityOnHand: 20}
	mangoBobs  = models.Beer{ID: 2, BeerName: "Mango Bobs", BeerStyle: models.BeerStyleAle, Upc: "0631234200036", Price: decimal.RequireFromString("12.95"), QuantityOnHand: 10}
	sampleList = []models.Beer{galaxyCat, mangoBobs}
)

func newService(t *testing.T, repo *MockBeerRepository, publisher services.EventPublisher) *services.BeerService {
	t.Helper()
	store, err := cache.New(cache.DefaultConfig())
	require.NoError(t, err)
	return services.NewBeerService(repo, store, publisher, quietLog)
}

func copyOf(b models.Beer) *models.Beer {
	return &b
}

func TestBeerService_ListBeers(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	mockRepo.On("FindAll", mock.Anything, models.BeerFilter{}, firstPage).Return(sampleList, nil).Once()

	page, err := service.ListBeers(ctx, models.BeerFilter{}, firstPage, false)
	assert.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Nil(t, page.Content[0].QuantityOnHand)

	cached, err := service.ListBeers(ctx, models.BeerFilter{}, firstPage, false)
	assert.NoError(t, err)
	assert.Same(t, page, cached)
	mockRepo.AssertExpectations(t)
}

func TestBeerService_ListBeers_InventoryBypassesCache(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)
	filter := models.BeerFilter{BeerName: "Galaxy Cat", BeerStyle: models.BeerStylePaleAle}

	mockRepo.On("FindAll", mock.Anything, filter, firstPage).Return([]models.Beer{galaxyCat}, nil).Twice()

	for i := 0; i < 2; i++ {
		page, err := service.ListBeers(ctx, filter, firstPage, true)
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		require.NotNil(t, page.Content[0].QuantityOnHand)
		assert.Equal(t, 20, *page.Content[0].QuantityOnHand)
	}
	mockRepo.AssertExpectations(t)
}

func TestBeerService_ListBeers_Error(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	mockRepo.On("FindAll", mock.Anything, models.BeerFilter{}, firstPage).Return(nil, errors.New("database error")).Twice()

	_, err := service.ListBeers(ctx, models.BeerFilter{}, firstPage, false)
	assert.ErrorContains(t, err, "database error")
	_, err = service.ListBeers(ctx, models.BeerFilter{}, firstPage, false)
	assert.Error(t, err, "failures are not cached")
	mockRepo.AssertExpectations(t)
}

func TestBeerService_GetByID(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	// Test cache hit without inventory
	mockRepo.On("FindByID", mock.Anything, 1).Return(copyOf(galaxyCat), nil).Once()
	first, err := service.GetByID(ctx, 1, false)
	assert.NoError(t, err)
	second, err := service.GetByID(ctx, 1, false)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	mockRepo.AssertExpectations(t)

	// Test inventory lookups always reach the store
	mockRepo.On("FindByID", mock.Anything, 1).Return(copyOf(galaxyCat), nil).Twice()
	for i := 0; i < 2; i++ {
		dto, err := service.GetByID(ctx, 1, true)
		require.NoError(t, err)
		require.NotNil(t, dto.QuantityOnHand)
	}
	mockRepo.AssertExpectations(t)

	// Test beer not found
	mockRepo.On("FindByID", mock.Anything, 99).Return(nil, notFound).Once()
	dto, err := service.GetByID(ctx, 99, false)
	assert.Nil(t, dto)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBeerService_GetByUpc(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	mockRepo.On("FindByUpc", mock.Anything, mangoBobs.Upc).Return(copyOf(mangoBobs), nil).Once()
	dto, err := service.GetByUpc(ctx, mangoBobs.Upc)
	assert.NoError(t, err)
	assert.Equal(t, "Mango Bobs", dto.BeerName)
	assert.Nil(t, dto.QuantityOnHand)

	again, err := service.GetByUpc(ctx, mangoBobs.Upc)
	assert.NoError(t, err)
	assert.Same(t, dto, again)

	mockRepo.On("FindByUpc", mock.Anything, "1777").Return(nil, repositories.ErrBeerNotFound).Once()
	_, err = service.GetByUpc(ctx, "1777")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestBeerService_SaveNewBeer(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	mockMQ := new(MockPublisher)
	service := newService(t, mockRepo, mockMQ)

	newBeer := &models.BeerDto{BeerName: "Rumpis favs", BeerStyle: "IPA", Upc: "123123321", Price: decimal.RequireFromString("6.99")}

	// Test successful creation
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Beer")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Beer).ID = 42
	}).Return(nil).Once()
	mockMQ.On("Publish", mock.Anything, services.EventBeerCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.BeerEvent
		return json.Unmarshal(body, &event) == nil && event.BeerID == 42 && event.Upc == "123123321"
	})).Return(nil).Once()

	saved, err := service.SaveNewBeer(ctx, newBeer)
	assert.NoError(t, err)
	assert.Equal(t, 42, saved.ID)
	assert.Equal(t, "IPA", saved.BeerStyle)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Beer")).Return(errors.New("database error")).Once()
	_, err = service.SaveNewBeer(ctx, newBeer)
	assert.ErrorContains(t, err, "database error")
	mockRepo.AssertExpectations(t)

	// Test unknown style never reaches the store
	_, err = service.SaveNewBeer(ctx, &models.BeerDto{BeerName: "elo", BeerStyle: "Apa"})
	assert.ErrorIs(t, err, models.ErrInvalidBeerStyle)
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestBeerService_SaveNewBeer_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	mockMQ := new(MockPublisher)
	service := newService(t, mockRepo, mockMQ)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Beer")).Return(nil).Once()
	mockMQ.On("Publish", mock.Anything, services.EventBeerCreated, mock.Anything).Return(errors.New("channel closed")).Once()

	_, err := service.SaveNewBeer(ctx, &models.BeerDto{BeerName: "Cage Blond", BeerStyle: "ALE"})
	assert.NoError(t, err)
	mockMQ.AssertExpectations(t)
}

func TestBeerService_UpdateBeer(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	// Warm the cache so the update has something to evict
	mockRepo.On("FindByID", mock.Anything, 1).Return(copyOf(galaxyCat), nil).Once()
	_, err := service.GetByID(ctx, 1, false)
	require.NoError(t, err)

	update := &models.BeerDto{BeerName: "New Name Son", BeerStyle: "PALE_ALE", Upc: galaxyCat.Upc, Price: decimal.RequireFromString("13.00")}
	mockRepo.On("FindByID", mock.Anything, 1).Return(copyOf(galaxyCat), nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Beer) bool {
		return b.ID == 1 && b.BeerName == "New Name Son" && b.QuantityOnHand == 20
	})).Return(nil).Once()

	updated, err := service.UpdateBeer(ctx, 1, update)
	assert.NoError(t, err)
	assert.True(t, updated.HasID())
	assert.Equal(t, "New Name Son", updated.BeerName)

	renamed := galaxyCat
	renamed.BeerName = "New Name Son"
	mockRepo.On("FindByID", mock.Anything, 1).Return(&renamed, nil).Once()
	reloaded, err := service.GetByID(ctx, 1, false)
	assert.NoError(t, err)
	assert.Equal(t, "New Name Son", reloaded.BeerName, "update evicts the cached view")
	mockRepo.AssertExpectations(t)
}

func TestBeerService_UpdateBeer_NotFound(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	mockRepo.On("FindByID", mock.Anything, 99).Return(nil, notFound).Once()

	result, err := service.UpdateBeer(ctx, 99, &models.BeerDto{BeerName: "Ghost", BeerStyle: "STOUT"})
	assert.NoError(t, err)
	assert.False(t, result.HasID())
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestBeerService_DeleteBeerByID(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := newService(t, mockRepo, nil)

	mockRepo.On("DeleteByID", mock.Anything, 1).Return(nil).Once()
	assert.NoError(t, service.DeleteBeerByID(ctx, 1))

	mockRepo.On("DeleteByID", mock.Anything, 2).Return(errors.New("database error")).Once()
	assert.ErrorContains(t, service.DeleteBeerByID(ctx, 2), "database error")
	mockRepo.AssertExpectations(t)
}

func TestBeerService_DeleteBeerByIDStrict(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	mockMQ := new(MockPublisher)
	service := newService(t, mockRepo, mockMQ)

	// Test deletion of a missing beer
	mockRepo.On("FindByID", mock.Anything, 99).Return(nil, notFound).Once()
	err := service.DeleteBeerByIDStrict(ctx, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, 99)

	// Test successful deletion
	mockRepo.On("FindByID", mock.Anything, 2).Return(copyOf(mangoBobs), nil).Once()
	mockRepo.On("DeleteByID", mock.Anything, 2).Return(nil).Once()
	mockMQ.On("Publish", mock.Anything, services.EventBeerDeleted, mock.Anything).Return(nil).Once()
	assert.NoError(t, service.DeleteBeerByIDStrict(ctx, 2))

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestBeerService_WithoutCache(t *testing.T) {
	mockRepo := new(MockBeerRepository)
	service := services.NewBeerService(mockRepo, nil, nil, nil)

	mockRepo.On("FindByID", mock.Anything, 1).Return(copyOf(galaxyCat), nil).Twice()
	_, err := service.GetByID(ctx, 1, false)
	assert.NoError(t, err)
	_, err = service.GetByID(ctx, 1, false)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
