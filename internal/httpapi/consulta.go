package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/consulta/internal/query"
)

// bindRequest decodes a filtered query body. An empty body is the default
// request. The limit must be non-negative and, when maxLimit > 0, at most
// maxLimit.
func bindRequest(c *gin.Context, maxLimit int) (query.Request, bool) {
	var req query.Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return query.Request{}, false
		}
	}

	limit := req.Limit()
	switch {
	case limit < 0:
		validationFailed(c, fmt.Errorf("limite must be >= 0, got %d", limit))
		return query.Request{}, false
	case maxLimit > 0 && limit > maxLimit:
		validationFailed(c, fmt.Errorf("limite must be <= %d, got %d", maxLimit, limit))
		return query.Request{}, false
	}
	return req, true
}

// listed responds with rows, using emptyMsg when there are none.
func listed[T any](c *gin.Context, rows []T, foundMsg, emptyMsg string) {
	if len(rows) == 0 {
		ok(c, http.StatusOK, emptyMsg, []T{})
		return
	}
	ok(c, http.StatusOK, foundMsg, rows)
}
