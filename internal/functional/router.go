// Package functional exposes the /api/v2 beer API as a declarative route table.
package functional

import (
	"github.com/gofiber/fiber/v2"
)

const (
	BeerV2URL     = "/api/v2/beer"
	BeerV2URLByID = "/api/v2/beer/:beerId"
	BeerV2UPC     = "/api/v2/beerUpc"
	BeerV2UPCPath = "/api/v2/beerUpc/:upc"
)

// Route binds one method and path to a handler function.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// RouteTable is an ordered set of routes.
type RouteTable []Route

// Register adds every route of the table to router.
func (rt RouteTable) Register(router fiber.Router) {
	for _, route := range rt {
		router.Add(route.Method, route.Path, route.Handler)
	}
}

// BeerRoutesV2 is the route table of the v2 beer API.
func BeerRoutesV2(h *BeerHandlerV2) RouteTable {
	return RouteTable{
		{Method: fiber.MethodGet, Path: BeerV2URL, Handler: h.ListBeers},
		{Method: fiber.MethodGet, Path: BeerV2URLByID, Handler: h.GetBeerByID},
		{Method: fiber.MethodGet, Path: BeerV2UPCPath, Handler: h.GetBeerByUpc},
		{Method: fiber.MethodPost, Path: BeerV2URL, Handler: h.SaveNewBeer},
		{Method: fiber.MethodPut, Path: BeerV2URLByID, Handler: h.UpdateBeer},
		{Method: fiber.MethodDelete, Path: BeerV2URLByID, Handler: h.DeleteBeer},
	}
}
