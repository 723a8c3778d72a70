package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-seat-reservation/internal/catalog"
)

// ListRestaurants handles GET /v1/restaurants.  ?q= filters by name,
// ignoring case, and ?sort= orders by "name" (default) or "rating".
func ListRestaurants(c echo.Context) error {
	sortBy := c.QueryParam("sort")
	switch sortBy {
	case "", catalog.SortByName, catalog.SortByRating:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sort must be name or rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.Search(c.QueryParam("q"), sortBy)})
}

// GetRestaurant handles GET /v1/restaurants/:id.
func GetRestaurant(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	r, found := catalog.ByID(id)
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	return c.JSON(http.StatusOK, r)
}
