// File: services/invoicing/errors.go
package invoicing

import "fmt"

// Failure codes surfaced to tool results and HTTP responses.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// InvoiceError is a typed business failure. Callers branch on Code; the
// message is safe to show to end users.
type InvoiceError struct {
	Code    string
	Message string
}

func (e *InvoiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &InvoiceError{Code: CodeNotFound, Message: msg}
}

func NewValidationError(msg string) error {
	return &InvoiceError{Code: CodeValidation, Message: msg}
}

func NewInternalError(msg string) error {
	return &InvoiceError{Code: CodeInternal, Message: msg}
}

// AsInvoiceError unwraps err into an InvoiceError, or nil when it is some
// other kind of failure.
func AsInvoiceError(err error) *InvoiceError {
	if ie, ok := err.(*InvoiceError); ok {
		return ie
	}
	return nil
}
