package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog errors
	CodeItemIDEmpty       Code = "ITEM_ID_EMPTY"
	CodeItemNameEmpty     Code = "ITEM_NAME_EMPTY"
	CodeItemPriceNegative Code = "ITEM_PRICE_NEGATIVE"
	CodeItemRatingRange   Code = "ITEM_RATING_OUT_OF_RANGE"
	CodeItemPrepNegative  Code = "ITEM_PREP_MINUTES_NEGATIVE"
	CodeItemDuplicate     Code = "ITEM_DUPLICATE"
	CodeItemNotFound      Code = "ITEM_NOT_FOUND"
	CodeInvalidFilter     Code = "INVALID_FILTER"

	// Cart/order errors
	CodeCartEmpty      Code = "CART_EMPTY"
	CodeOrderNotFound  Code = "ORDER_NOT_FOUND"
	CodeInvalidStatus  Code = "INVALID_ORDER_STATUS"
	CodeOrderInFlight  Code = "ORDER_CONFIRMATION_IN_FLIGHT"
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// Storage errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeStorageFailure Code = "STORAGE_FAILURE"
	CodeStateVersion   Code = "STATE_VERSION_UNSUPPORTED"
	CodeStateDecode    Code = "STATE_DECODE_FAILED"
)

// Kind classifies codes for callers that branch on error class rather
// than on individual codes.
type Kind int

const (
	// KindInternal represents an unclassified or internal failure.
	KindInternal Kind = iota
	// KindInvalidArgument represents validation failures and bad input.
	KindInvalidArgument
	// KindNotFound represents a missing resource.
	KindNotFound
	// KindFailedPrecondition represents state that disallows the operation.
	KindFailedPrecondition
	// KindUnavailable represents a failing dependency such as storage.
	KindUnavailable
)

// Kind maps a domain code to its error class.
func (c Code) Kind() Kind {
	switch c {
	case CodeItemIDEmpty,
		CodeItemNameEmpty,
		CodeItemPriceNegative,
		CodeItemRatingRange,
		CodeItemPrepNegative,
		CodeInvalidFilter,
		CodeInvalidStatus,
		CodeInvalidRequest:
		return KindInvalidArgument

	case CodeCartEmpty,
		CodeItemDuplicate,
		CodeOrderInFlight,
		CodeStateVersion,
		CodeStateDecode:
		return KindFailedPrecondition

	case CodeItemNotFound,
		CodeOrderNotFound,
		CodeNotFound:
		return KindNotFound

	case CodeStorageFailure:
		return KindUnavailable

	default:
		return KindInternal
	}
}
