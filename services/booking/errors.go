package booking

import "fmt"

// Failure codes surfaced to tool results and HTTP responses.
const (
	CodeSlotUnavailable = "SLOT_UNAVAILABLE"
	CodeHoldExpired     = "HOLD_EXPIRED"
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// ReservationError is a typed business failure. Callers branch on Code; the
// message is safe to show to end users.
type ReservationError struct {
	Code    string
	Message string
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError(msg string) error {
	return &ReservationError{Code: CodeSlotUnavailable, Message: msg}
}

func NewHoldExpiredError(msg string) error {
	return &ReservationError{Code: CodeHoldExpired, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ReservationError{Code: CodeNotFound, Message: msg}
}

func NewValidationError(msg string) error {
	return &ReservationError{Code: CodeValidation, Message: msg}
}

func NewInternalError(msg string) error {
	return &ReservationError{Code: CodeInternal, Message: msg}
}

// AsReservationError unwraps err into a ReservationError, or nil when it is
// some other kind of failure.
func AsReservationError(err error) *ReservationError {
	if re, ok := err.(*ReservationError); ok {
		return re
	}
	return nil
}
