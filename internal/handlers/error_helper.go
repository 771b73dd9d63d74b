package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/artisanhub/marketplace-api/internal/httperr"
)

// respondBusiness maps a business error onto an HTTP status by code shape:
// missing resources 404, ownership 403, bad input and payment rejections
// 400/422, anything else a generic 500 that leaks no internals.
func respondBusiness(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch {
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, "Resource not found.")
	case strings.HasPrefix(code, "not_your_"):
		httperr.Forbidden(c, code, "You do not own this resource.")
	case strings.HasPrefix(code, "invalid_"):
		httperr.Unprocessable(c, code, "Invalid request.")
	default:
		httperr.BadRequest(c, code, "Request could not be processed.")
	}
}
