// Package catalog serves the fixed list of partner restaurants shown on the
// home screen.  The data is compiled in; there is no write path.
package catalog

import (
	"sort"
	"strings"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// Sort orders accepted by Search.
const (
	SortByName   = "name"
	SortByRating = "rating"
)

var restaurants = []model.Restaurant{
	{
		ID:          1,
		Name:        "Chapter One",
		ImageRef:    "chapter_one",
		Popularity:  5,
		Address:     "18-19 Parnell Square N, Rotunda, Dublin 1",
		Description: "Contemporary Irish cooking with French influences, served in a basement dining room under the Dublin Writers Museum.",
	},
	{
		ID:          2,
		Name:        "Restaurant Patrick Guilbaud",
		ImageRef:    "patrick_guilbaud",
		Popularity:  5,
		Address:     "21 Upper Merrion Street, Dublin 2",
		Description: "Classic French cuisine built on Irish produce, in a Georgian townhouse beside the Merrion Hotel.",
	},
	{
		ID:          3,
		Name:        "Liath",
		ImageRef:    "liath",
		Popularity:  4,
		Address:     "19 Main St, Blackrock, Co. Dublin",
		Description: "A small tasting-menu room in Blackrock focused on Irish seafood, meat and foraged ingredients.",
	},
	{
		ID:          4,
		Name:        "The Greenhouse",
		ImageRef:    "greenhouse",
		Popularity:  4,
		Address:     "Dawson St, Dublin 2",
		Description: "Modern European tasting menus on Dawson Street with a strong seasonal focus.",
	},
	{
		ID:          5,
		Name:        "Aniar",
		ImageRef:    "aniar",
		Popularity:  3,
		Address:     "53 Lower Dominick Street, Galway",
		Description: "A modern take on west of Ireland cooking, with menus built around wild and seasonal produce.",
	},
	{
		ID:          6,
		Name:        "Bastible",
		ImageRef:    "bastible",
		Popularity:  3,
		Address:     "111 South Circular Road, Portobello, Dublin 8",
		Description: "Relaxed neighbourhood dining in Portobello with short menus that change with the season.",
	},
	{
		ID:          7,
		Name:        "Campagne",
		ImageRef:    "campagne",
		Popularity:  2,
		Address:     "5 The Arches, Gashouse Lane, Kilkenny",
		Description: "French bistro cooking with Irish ingredients, in a converted warehouse under the Kilkenny railway arches.",
	},
}

// All returns every restaurant in catalog order.
func All() []model.Restaurant {
	return append([]model.Restaurant(nil), restaurants...)
}

// ByID looks up a single restaurant.
func ByID(id uint64) (model.Restaurant, bool) {
	for _, r := range restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return model.Restaurant{}, false
}

// Search returns the restaurants whose name contains query, ignoring case,
// ordered by name ascending or by popularity descending.  An empty query
// matches everything; an unknown sort key falls back to name.
func Search(query, sortBy string) []model.Restaurant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if q == "" || strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	if sortBy == SortByRating {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
