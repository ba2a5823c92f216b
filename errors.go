package keyward

import (
	"errors"
)

// Common errors for client configuration.
var (
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrGatewayNotConfigured = errors.New("gateway not configured")
)
