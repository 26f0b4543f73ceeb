package functional

import (
	"fmt"
	"log/slog"

	"brewery/internal/handlers"
	"brewery/internal/services"
	"brewery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// BeerHandlerV2 holds the handler functions of the v2 route table.
type BeerHandlerV2 struct {
	service  *services.BeerService
	validate *validation.Validator
	logger   *slog.Logger
}

func NewBeerHandlerV2(service *services.BeerService, validate *validation.Validator, logger *slog.Logger) *BeerHandlerV2 {
	return &BeerHandlerV2{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

func (h *BeerHandlerV2) ListBeers(c *fiber.Ctx) error {
	query, err := handlers.ParseListQuery(c, "showInventory")
	if err != nil {
		return err
	}
	page, err := h.service.ListBeers(c.UserContext(), query.Filter, query.Page, query.ShowInventory)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// SaveNewBeer answers 200 with a location header pointing at the UPC route.
func (h *BeerHandlerV2) SaveNewBeer(c *fiber.Ctx) error {
	dto, err := handlers.ParseBeerBody(c, h.validate)
	if err != nil {
		return err
	}
	saved, err := h.service.SaveNewBeer(c.UserContext(), dto)
	if err != nil {
		return err
	}
	c.Set("location", fmt.Sprintf("%s/%d", BeerV2UPC, saved.ID))
	c.Status(fiber.StatusOK)
	return nil
}

func (h *BeerHandlerV2) GetBeerByID(c *fiber.Ctx) error {
	beerID, err := handlers.BeerIDParam(c)
	if err != nil {
		return err
	}
	beer, err := h.service.GetByID(c.UserContext(), beerID, c.QueryBool("showInventory", false))
	if err != nil {
		return err
	}
	return c.JSON(beer)
}

func (h *BeerHandlerV2) GetBeerByUpc(c *fiber.Ctx) error {
	beer, err := h.service.GetByUpc(c.UserContext(), c.Params("upc"))
	if err != nil {
		return err
	}
	return c.JSON(beer)
}

// UpdateBeer answers 204 when the beer was stored, 404 otherwise.
func (h *BeerHandlerV2) UpdateBeer(c *fiber.Ctx) error {
	beerID, err := handlers.BeerIDParam(c)
	if err != nil {
		return err
	}
	dto, err := handlers.ParseBeerBody(c, h.validate)
	if err != nil {
		return err
	}
	saved, err := h.service.UpdateBeer(c.UserContext(), beerID, dto)
	if err != nil {
		return err
	}
	if !saved.HasID() {
		h.logger.Debug("saved beer not found", "id", beerID)
		return services.ErrNotFound
	}
	h.logger.Debug("saved beer", "id", saved.ID)
	c.Status(fiber.StatusNoContent)
	return nil
}

// DeleteBeer uses the strict delete so a missing beer is a 404.
func (h *BeerHandlerV2) DeleteBeer(c *fiber.Ctx) error {
	beerID, err := handlers.BeerIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteBeerByIDStrict(c.UserContext(), beerID); err != nil {
		return err
	}
	c.Status(fiber.StatusOK)
	return nil
}
