package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-house/internal/auctionerrors"
	"auction-house/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName, message string, err error) {
	utils.JSONError(c, http.StatusBadRequest, message)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// BindFieldTypeError reports whether the bind failure was a JSON type
// mismatch on the named field, e.g. a string where a number belongs.
func BindFieldTypeError(err error, field string) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == field
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var tooLow *auctionerrors.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		return http.StatusBadRequest, "Bid must be higher than " + auctionerrors.FormatPrice(tooLow.CurrentPrice)
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "Bid must be higher than the current price"
	case errors.Is(err, auctionerrors.ErrInvalidAuctionID):
		return http.StatusBadRequest, "Invalid auction ID"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "Auction not found"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "Missing required fields"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
