package catalog

import (
	"strings"

	"vortex/models"
)

// FilterByCountry narrows items to those whose hydrated country-code set
// contains code (case-insensitive). Items without hydrated codes are
// excluded; the filter never triggers hydration itself, so callers must
// hydrate first. An empty code returns the input unchanged.
func FilterByCountry(items []models.Title, code string) []models.Title {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return items
	}

	filtered := make([]models.Title, 0, len(items))
	for _, item := range items {
		for _, c := range item.CountryCodes {
			if strings.ToUpper(c) == code {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}
