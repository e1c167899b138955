package failure

import (
	"errors"
	"net/http"
)

// Category groups failures by the kind of rule that rejected the request.
type Category string

const (
	CategoryValidation    Category = "VALIDATION"
	CategoryConflict      Category = "CONFLICT"
	CategoryStateConflict Category = "STATE_CONFLICT"
	CategoryNotFound      Category = "NOT_FOUND"
	CategoryForbidden     Category = "FORBIDDEN"
	CategoryUnauthorized  Category = "UNAUTHORIZED"
	CategoryInternal      Category = "INTERNAL"
)

const (
	ReasonInvalidInterval     = "INVALID_INTERVAL"
	ReasonInvalidDuration     = "INVALID_DURATION"
	ReasonInvalidQuantity     = "INVALID_QUANTITY"
	ReasonMissingField        = "MISSING_FIELD"
	ReasonOutsideAvailability = "OUTSIDE_AVAILABILITY"
	ReasonOfferingDisabled    = "OFFERING_DISABLED"
	ReasonInvalidAmount       = "INVALID_AMOUNT"
	ReasonInvalidKind         = "INVALID_KIND"

	ReasonSlotTaken         = "SLOT_TAKEN"
	ReasonCapacityExceeded  = "CAPACITY_EXCEEDED"
	ReasonInsufficientStock = "INSUFFICIENT_STOCK"

	ReasonAlreadyPaid      = "ALREADY_PAID"
	ReasonItemCancelled    = "ITEM_CANCELLED"
	ReasonCannotCancelPaid = "CANNOT_CANCEL_PAID"
	ReasonAlreadyCancelled = "ALREADY_CANCELLED"
	ReasonNotPaid          = "NOT_PAID"
	ReasonAlreadyReturned  = "ALREADY_RETURNED"
	ReasonNotReturnable    = "NOT_RETURNABLE"

	ReasonResourceNotFound    = "RESOURCE_NOT_FOUND"
	ReasonReservationNotFound = "RESERVATION_NOT_FOUND"
	ReasonClubNotFound        = "CLUB_NOT_FOUND"
	ReasonPlayerNotFound      = "PLAYER_NOT_FOUND"
	ReasonPaymentNotFound     = "PAYMENT_NOT_FOUND"

	ReasonClubNotApproved = "CLUB_NOT_APPROVED"
	ReasonNotOwner        = "NOT_OWNER"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Domain rejections also carry a Category and a machine-readable Reason.
type Failure struct {
	Code     int      `json:"code"`
	Category Category `json:"category,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Message  string   `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Category: CategoryValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Category: CategoryValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Category: CategoryForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Category: CategoryForbidden, Reason: ReasonNotOwner, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures by category and reason so sentinel comparisons work through wrapping.
func (e *Failure) Is(target error) bool {
	var t *Failure
	if !errors.As(target, &t) {
		return false
	}

	return e.Code == t.Code && e.Category == t.Category && e.Reason == t.Reason
}

// Validation returns a rejected-input failure.
func Validation(reason, msg string) error {
	return &Failure{Code: http.StatusBadRequest, Category: CategoryValidation, Reason: reason, Message: msg}
}

// ConflictWithReason returns a failure for slot, seat and stock collisions.
func ConflictWithReason(reason, msg string) error {
	return &Failure{Code: http.StatusConflict, Category: CategoryConflict, Reason: reason, Message: msg}
}

// StateConflict returns a failure for transitions not allowed from the current status.
func StateConflict(reason, msg string) error {
	return &Failure{Code: http.StatusConflict, Category: CategoryStateConflict, Reason: reason, Message: msg}
}

// NotFoundWithReason returns a failure for a missing entity with a machine-readable reason.
func NotFoundWithReason(reason, msg string) error {
	return &Failure{Code: http.StatusNotFound, Category: CategoryNotFound, Reason: reason, Message: msg}
}

// ForbiddenWithReason returns a failure for a permission or ownership rejection.
func ForbiddenWithReason(reason, msg string) error {
	return &Failure{Code: http.StatusForbidden, Category: CategoryForbidden, Reason: reason, Message: msg}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:     http.StatusBadRequest,
			Category: CategoryValidation,
			Message:  err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:     http.StatusBadRequest,
		Category: CategoryValidation,
		Message:  msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:     http.StatusUnauthorized,
		Category: CategoryUnauthorized,
		Message:  msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:     http.StatusInternalServerError,
			Category: CategoryInternal,
			Message:  err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:     http.StatusNotFound,
		Category: CategoryNotFound,
		Message:  entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:     http.StatusConflict,
		Category: CategoryConflict,
		Message:  message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:     http.StatusForbidden,
		Category: CategoryForbidden,
		Message:  msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the machine-readable reason of an error, or empty when it has none.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// GetCategory returns the category of an error, INTERNAL for anything that is not a Failure.
func GetCategory(err error) Category {
	var fail *Failure
	if errors.As(err, &fail) && fail.Category != "" {
		return fail.Category
	}

	return CategoryInternal
}
