package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrNameRequired       = errors.New("name is required")
	ErrGroupRequired      = errors.New("account group is required")
	ErrAccountNotEligible = errors.New("account group not allowed for this side")

	// Product and master errors
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidMasterKind = errors.New("invalid master kind")

	// Trade errors
	ErrInvalidTradeType = errors.New("invalid trade type")
	ErrMissingAccount   = errors.New("account is required")
	ErrNoLineItems      = errors.New("at least one line item is required")
	ErrInvalidLineItem  = errors.New("line item needs a product, a positive quantity and a non-negative price")
	ErrTradeNotFound    = errors.New("trade not found")

	// Fund errors
	ErrInvalidFundType = errors.New("invalid fund type")
	ErrSameAccount     = errors.New("from and to accounts must differ")
	ErrInvalidAmount   = errors.New("amount must be positive")

	// Report errors
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
