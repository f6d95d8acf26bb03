package pricing

import "errors"

var (
	ErrInvalidMarginTarget = errors.New("invalid margin target")
	ErrNoPricedItems       = errors.New("at least one item needs a price")
	ErrNoLandingCost       = errors.New("at least one item needs a landing cost")
	ErrInvalidOtdOffer     = errors.New("out-the-door offer must be greater than zero")
	ErrUnknownMode         = errors.New("unknown mode")
)
