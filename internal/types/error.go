package types

import "fmt"

// CustomError is the typed error carried from the service layer to the HTTP
// boundary. Code is the HTTP status the global error handler will emit; Type
// is a stable machine-readable category for clients and logs.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewNotFound reports an entity that is absent or owned by another user.
// The two cases are deliberately indistinguishable.
func NewNotFound(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: "not_found"}
}

// NewValidation reports a malformed or semantically invalid request body.
func NewValidation(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: "validation"}
}

// NewUnauthenticated reports a missing, invalid, or expired session.
func NewUnauthenticated(message string) *CustomError {
	return &CustomError{Code: 401, Message: message, Type: "unauthenticated"}
}

// NewConflict reports a uniqueness violation (duplicate email on register).
func NewConflict(message string) *CustomError {
	return &CustomError{Code: 409, Message: message, Type: "conflict"}
}

// NewInternal reports a storage or infrastructure failure, including
// cancellation of a request's in-flight database work.
func NewInternal(message string) *CustomError {
	return &CustomError{Code: 500, Message: message, Type: "internal"}
}

// ErrInvalidCredentials is returned for both unknown email and wrong
// password, so login failures cannot be used to enumerate accounts.
var ErrInvalidCredentials = NewUnauthenticated("Invalid email or password")
