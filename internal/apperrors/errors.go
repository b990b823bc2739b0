package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund code is not in the catalog.
	ErrFundNotFound = errors.New("fund not found")

	// ErrHoldingNotFound indicates that no holding exists for a fund code.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrPendingTradeNotFound indicates that a pending trade with the given ID does not exist.
	ErrPendingTradeNotFound = errors.New("pending trade not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrIncompleteParams indicates that a required numeric parameter to an
	// arbitrage calculation is missing or zero. Callers render the message
	// inline rather than treating it as a fault.
	ErrIncompleteParams = errors.New("incomplete parameters")

	// ErrUnknownStrategy indicates an arbitrage type other than premium or discount.
	ErrUnknownStrategy = errors.New("unknown arbitrage strategy")

	// ErrInsufficientShares indicates that a sell cannot be accepted because
	// the holding, net of shares reserved by pending sells, is too small.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidTradeType indicates a trade type other than buy or sell.
	ErrInvalidTradeType = errors.New("invalid trade type")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveTrades   = errors.New("failed to retrieve trades")
	ErrFailedToRetrievePending  = errors.New("failed to retrieve pending trades")
	ErrFailedToRetrieveQuote    = errors.New("failed to retrieve quote")
	ErrFailedToRetrieveConfig   = errors.New("failed to retrieve monitor configuration")
	ErrFailedToSaveConfig       = errors.New("failed to save monitor configuration")
	ErrFailedToExport           = errors.New("failed to export data")
	ErrFailedToImport           = errors.New("failed to import data")
)
