package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API errors, matched by the normalized error returned from every failed request
	ErrAPIRequest  = fmt.Errorf("API request failed")
	ErrBadRequest  = fmt.Errorf("invalid or duplicate data")
	ErrNotFound    = fmt.Errorf("resource not found")
	ErrValidation  = fmt.Errorf("validation error")
	ErrServer      = fmt.Errorf("internal server error")
	ErrUnreachable = fmt.Errorf("could not connect to server")

	// Local state errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrDatabase           = fmt.Errorf("database error")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
