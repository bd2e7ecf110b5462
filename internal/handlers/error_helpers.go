package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/barberbook/booking-api/internal/httperr"
)

// writeUsecaseError maps a use-case error onto the HTTP taxonomy.
// Slot conflicts surface as 400 like every other rejected create.
func writeUsecaseError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch {
	case be.Code == "forbidden":
		httperr.Forbidden(c, be.Code, "You are not allowed to do that.")
	case strings.HasSuffix(be.Code, "_not_found"):
		httperr.NotFound(c, be.Code, "Resource not found.")
	case be.Code == "slot_unavailable":
		httperr.BadRequest(c, be.Code, "The barber is not available at this time.")
	default:
		httperr.BadRequest(c, be.Code, "Invalid request.")
	}
}
