// Package httpapi holds the pieces every controller shares: the domain-error
// to status-code mapping and the query parameter parsing rules.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/model"
	"shareit/util/apperr"
)

// Error writes err with the status its code maps to. Unknown-state errors use
// the "error" key so callers see the offending literal verbatim.
func Error(c echo.Context, err error) error {
	switch apperr.CodeOf(err) {
	case apperr.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.CodeForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case apperr.CodeValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.CodeConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case apperr.CodeUnknownState:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// ParsePage reads the from/size pair. Both absent defaults to the first ten
// rows; exactly one present is rejected.
func ParsePage(c echo.Context) (*model.Page, error) {
	fromRaw := c.QueryParam("from")
	sizeRaw := c.QueryParam("size")

	if fromRaw == "" && sizeRaw == "" {
		return &model.Page{From: 0, Size: 10}, nil
	}
	if fromRaw == "" || sizeRaw == "" {
		return nil, apperr.Validation("from and size must be provided together")
	}

	from, err := strconv.Atoi(fromRaw)
	if err != nil || from < 0 {
		return nil, apperr.Validation("from must be a non-negative integer")
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil || size <= 0 {
		return nil, apperr.Validation("size must be a positive integer")
	}
	return &model.Page{From: from, Size: size}, nil
}

// PathID parses the :id path segment.
func PathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}
