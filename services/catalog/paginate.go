package catalog

import "vortex/models"

// Paginate slices items into a fixed-size page. The requested page is
// clamped into [1, totalPages] and totalPages is never below 1, so an empty
// list still yields a well-formed single empty page.
func Paginate(items []models.Title, page, pageSize int) models.Page {
	if pageSize < 1 {
		pageSize = 1
	}

	totalItems := len(items)
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	pageItems := make([]models.Title, end-start)
	copy(pageItems, items[start:end])

	return models.Page{
		Items:      pageItems,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
		PageSize:   pageSize,
	}
}
