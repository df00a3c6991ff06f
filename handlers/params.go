package handlers

import (
	"strconv"

	"lumera/services/hapio"

	"github.com/gin-gonic/gin"
)

// parsePagination coerces page/per_page query params, clamping nonsense to
// the defaults instead of erroring.
func parsePagination(c *gin.Context) hapio.ListParams {
	params := hapio.ListParams{Page: 1, PerPage: 20}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		params.PerPage = perPage
	}
	return params
}
