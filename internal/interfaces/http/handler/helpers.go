package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/domain/shared"
)

// parseFilter builds a repository filter from the common list query
// parameters. Unknown or malformed values fall back to the defaults.
func parseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 && pageSize <= 100 {
		filter.PageSize = pageSize
	}
	if orderBy := c.Query("order_by"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir := c.Query("order_dir"); orderDir == "asc" || orderDir == "desc" {
		filter.OrderDir = orderDir
	}
	filter.Search = c.Query("search")

	return filter
}

// withQueryFilters copies the named query parameters into the filter's
// Filters map when present. Literal "true"/"false" become booleans; other
// values (including numerics) stay strings and bind as SQL parameters.
func withQueryFilters(c *gin.Context, filter shared.Filter, keys ...string) shared.Filter {
	for _, key := range keys {
		value := c.Query(key)
		switch value {
		case "":
		case "true":
			filter.Filters[key] = true
		case "false":
			filter.Filters[key] = false
		default:
			filter.Filters[key] = value
		}
	}
	return filter
}
