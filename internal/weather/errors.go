package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies expected gateway failures.
type ErrorKind string

const (
	// KindNotFound means the provider reports the city does not resolve.
	KindNotFound ErrorKind = "not_found"
	// KindNetwork covers transport-level failures and timeouts.
	KindNetwork ErrorKind = "network"
	// KindMalformed means the provider response is missing expected fields.
	KindMalformed ErrorKind = "malformed"
)

// GatewayError is the tagged error returned for all expected failure kinds.
// The gateway never panics for these; the caller decides how to present them.
type GatewayError struct {
	Kind ErrorKind
	City string
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather gateway: %s for %q: %v", e.Kind, e.City, e.Err)
	}
	return fmt.Sprintf("weather gateway: %s for %q", e.Kind, e.City)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from err, defaulting to KindNetwork for
// anything that is not a GatewayError.
func KindOf(err error) ErrorKind {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindNetwork
}
