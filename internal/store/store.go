// Package store provides the GORM-backed implementations of the persistence
// interfaces consumed by the rental services.
package store

import (
	"errors"

	"github.com/yussufhh/Novella/internal/rental"
	"gorm.io/gorm"
)

// translate maps driver-level lookup misses onto the sentinel the services
// understand.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rental.ErrNoRecord
	}
	return err
}
