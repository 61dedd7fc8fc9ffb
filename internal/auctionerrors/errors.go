package auctionerrors

import (
	"errors"
	"strconv"
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
)

// business logic errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAuctionID   = errors.New("invalid auction ID")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// BidTooLowError carries the committed current price a rejected bid
// failed to beat, so the response can name the amount to exceed.
type BidTooLowError struct {
	CurrentPrice float64
}

func (e *BidTooLowError) Error() string {
	return "bid must be higher than " + FormatPrice(e.CurrentPrice)
}

// Is makes errors.Is(err, ErrBidTooLow) match
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

// FormatPrice renders a price without trailing zeros (100 not 100.000000)
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
