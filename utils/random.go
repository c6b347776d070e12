package utils

import (
	"github.com/segmentio/ksuid"
)

// NewSecretToken returns an opaque single-use token for email verification
// and password reset links.
func NewSecretToken() string {
	return ksuid.New().String() + ksuid.New().String()
}
