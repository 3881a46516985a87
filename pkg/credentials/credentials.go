// Package credentials keeps provider credentials saved through the agent API
// so later discoveries can run without sending them again.
package credentials

import (
	"errors"

	"github.com/kubev2v/migration-discovery/internal/models"
)

// ErrNotFound is returned by Load when nothing is stored.
var ErrNotFound = errors.New("credentials not found")

type Store interface {
	// Save stores the non empty provider sections of cfg. Sections left
	// empty keep their stored value.
	Save(cfg models.AdapterConfig) error
	// Load returns ErrNotFound when nothing is stored.
	Load() (*models.AdapterConfig, error)
	// Delete is a no-op when nothing is stored.
	Delete() error
	Exists() bool
}
