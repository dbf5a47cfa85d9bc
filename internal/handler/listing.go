package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lecturer-admin-api/internal/middleware"
	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
	"github.com/noah-isme/lecturer-admin-api/pkg/response"
)

const formatParam = "format"

// listingState restores the table state from the request URL.
func listingState(c *gin.Context) tablestate.State {
	return tablestate.Parse(c.Request.URL.Query())
}

// exportState is listingState without the export format parameter, which would
// otherwise be read as a column filter.
func exportState(c *gin.Context) (tablestate.State, string) {
	query := url.Values{}
	for key, values := range c.Request.URL.Query() {
		query[key] = values
	}
	format := strings.TrimSpace(query.Get(formatParam))
	query.Del(formatParam)
	return tablestate.Parse(query), format
}

// respondPage writes one page of a listing with its pagination and navigation links.
func respondPage[T any](c *gin.Context, state tablestate.State, page models.Page[T], cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetMeta(c, "query", state.Encode())
	middleware.SetMeta(c, "links", pageLinks(c.Request.URL.Path, state, page.PageCount))

	pagination := &models.Pagination{
		PageIndex: state.PageIndex,
		PageSize:  state.Limit(),
		PageCount: page.PageCount,
		RowCount:  page.RowCount,
	}
	response.JSON(c, http.StatusOK, page.Data, pagination, middleware.ExtractMeta(c))
}

func pageLinks(path string, state tablestate.State, pageCount int) map[string]string {
	links := map[string]string{"self": linkTo(path, state)}
	if state.PageIndex+1 < pageCount {
		links["next"] = linkTo(path, state.SetPage(state.PageIndex+1))
	}
	if state.PageIndex > 0 {
		prev := state.PageIndex - 1
		if pageCount > 0 && prev >= pageCount {
			prev = pageCount - 1
		}
		links["prev"] = linkTo(path, state.SetPage(prev))
	}
	return links
}

func linkTo(path string, state tablestate.State) string {
	if encoded := state.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// bindJSON decodes the request body; malformed JSON is a validation error.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return false
	}
	return true
}

func respondCached(c *gin.Context, data interface{}, cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, data, nil, middleware.ExtractMeta(c))
}
