package core

import (
	"strings"

	"github.com/google/uuid"
)

// NewShortID returns prefix followed by the first 12 hex characters of a random UUID,
// e.g. "thread_3f2a9c0b1d4e".
func NewShortID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + hex[:12]
}
