package common

import "github.com/google/uuid"

// NewID returns a fresh record identifier of the form "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
