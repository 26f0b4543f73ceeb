package handlers

import (
	"brewery/internal/models"
	"brewery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListQuery is the normalized query string of a beer listing.
type ListQuery struct {
	Filter        models.BeerFilter
	Page          models.PageRequest
	ShowInventory bool
}

// ParseListQuery reads pageNumber, pageSize, beerName and beerStyle, clamping
// the page window to its defaults. inventoryParam names the boolean flag that
// opts into quantity on hand.
func ParseListQuery(c *fiber.Ctx, inventoryParam string) (ListQuery, error) {
	query := ListQuery{
		Filter: models.BeerFilter{BeerName: c.Query("beerName")},
		Page: models.NewPageRequest(
			c.QueryInt("pageNumber", models.DefaultPageNumber),
			c.QueryInt("pageSize", models.DefaultPageSize),
		),
		ShowInventory: c.QueryBool(inventoryParam, false),
	}
	if raw := c.Query("beerStyle"); raw != "" {
		style, err := models.ParseBeerStyle(raw)
		if err != nil {
			return ListQuery{}, err
		}
		query.Filter.BeerStyle = style
	}
	return query, nil
}

// BeerIDParam parses the :beerId path segment.
func BeerIDParam(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("beerId")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid beer id")
	}
	return id, nil
}

// ParseBeerBody decodes and validates a beer payload before any service call.
func ParseBeerBody(c *fiber.Ctx, v *validation.Validator) (*models.BeerDto, error) {
	var dto models.BeerDto
	if err := c.BodyParser(&dto); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := v.Struct(dto); err != nil {
		return nil, err
	}
	return &dto, nil
}
