package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"brewery/internal/services"
	"brewery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// BeerHandler handles the /api/v1 beer routes.
type BeerHandler struct {
	service         *services.BeerService
	validate        *validation.Validator
	locationBaseURL string
	logger          *slog.Logger
}

// NewBeerHandler creates a new BeerHandler. locationBaseURL prefixes the
// Location header of created beers.
func NewBeerHandler(service *services.BeerService, validate *validation.Validator, locationBaseURL string, logger *slog.Logger) *BeerHandler {
	return &BeerHandler{
		service:         service,
		validate:        validate,
		locationBaseURL: locationBaseURL,
		logger:          logger,
	}
}

// RegisterRoutes registers the beer routes with the Fiber router.
func (h *BeerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/beer", h.HandleListBeers)
	router.Get("/beer/:beerId", h.HandleGetBeerByID)
	router.Get("/beerUpc/:upc", h.HandleGetBeerByUpc)
	router.Post("/beer", h.HandleSaveNewBeer)
	router.Put("/beer/:beerId", h.HandleUpdateBeer)
	router.Delete("/beer/:beerId", h.HandleDeleteBeer)
}

// HandleListBeers returns one page of beers. An empty page is still a 200.
func (h *BeerHandler) HandleListBeers(c *fiber.Ctx) error {
	query, err := ParseListQuery(c, "showInventoryOnHand")
	if err != nil {
		return err
	}
	page, err := h.service.ListBeers(c.UserContext(), query.Filter, query.Page, query.ShowInventory)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetBeerByID returns a single beer or 404.
func (h *BeerHandler) HandleGetBeerByID(c *fiber.Ctx) error {
	beerID, err := BeerIDParam(c)
	if err != nil {
		return err
	}
	beer, err := h.service.GetByID(c.UserContext(), beerID, c.QueryBool("showInventoryOnHand", false))
	if err != nil {
		return err
	}
	if !beer.HasID() {
		return services.ErrNotFound
	}
	return c.JSON(beer)
}

// HandleGetBeerByUpc returns the beer with the given UPC. An unknown UPC
// answers 200 with an empty body on this API version.
func (h *BeerHandler) HandleGetBeerByUpc(c *fiber.Ctx) error {
	beer, err := h.service.GetByUpc(c.UserContext(), c.Params("upc"))
	if errors.Is(err, services.ErrNotFound) {
		c.Status(fiber.StatusOK)
		return nil
	}
	if err != nil {
		return err
	}
	return c.JSON(beer)
}

// HandleSaveNewBeer stores a beer and answers 201 with its Location.
func (h *BeerHandler) HandleSaveNewBeer(c *fiber.Ctx) error {
	dto, err := ParseBeerBody(c, h.validate)
	if err != nil {
		return err
	}
	saved, err := h.service.SaveNewBeer(c.UserContext(), dto)
	if err != nil {
		return err
	}
	c.Location(fmt.Sprintf("%s/api/v1/beer/%d", h.locationBaseURL, saved.ID))
	c.Status(fiber.StatusCreated)
	return nil
}

// HandleUpdateBeer answers 204 once the update is stored, 404 when the beer does not exist.
func (h *BeerHandler) HandleUpdateBeer(c *fiber.Ctx) error {
	beerID, err := BeerIDParam(c)
	if err != nil {
		return err
	}
	dto, err := ParseBeerBody(c, h.validate)
	if err != nil {
		return err
	}
	updated, err := h.service.UpdateBeer(c.UserContext(), beerID, dto)
	if err != nil {
		return err
	}
	if !updated.HasID() {
		h.logger.Debug("beer not found for update", "id", beerID)
		return services.ErrNotFound
	}
	c.Status(fiber.StatusNoContent)
	return nil
}

// HandleDeleteBeer deletes unconditionally and always answers 200.
func (h *BeerHandler) HandleDeleteBeer(c *fiber.Ctx) error {
	beerID, err := BeerIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteBeerByID(c.UserContext(), beerID); err != nil {
		return err
	}
	c.Status(fiber.StatusOK)
	return nil
}
