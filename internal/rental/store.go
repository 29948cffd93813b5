package rental

import (
	"errors"

	"github.com/yussufhh/Novella/internal/model"
)

// ErrNoRecord is returned by stores when a looked-up entity does not exist.
// Services translate it into the not_found kind of the error taxonomy.
var ErrNoRecord = errors.New("record not found")

// UserStore persists users. Emails are stored and looked up in their
// lower-cased form.
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Update(user *model.User) error
}

// PropertyStore persists properties.
type PropertyStore interface {
	Create(property *model.Property) error
	GetByID(id uint) (*model.Property, error)
	List(filter model.PropertyFilter) ([]model.Property, error)
	ListByOwner(ownerID uint) ([]model.Property, error)
	Update(property *model.Property) error
	// DeleteCancellingBookings removes the property and, in the same
	// transaction, moves all of its pending and approved bookings to
	// cancelled so the booking history stays auditable.
	DeleteCancellingBookings(id uint) error
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(booking *model.Booking) error
	GetByID(id uint) (*model.Booking, error)
	ListByRenter(renterID uint) ([]model.Booking, error)
	ListByOwner(ownerID uint) ([]model.Booking, error)
	// Transition re-reads the booking under a write lock, applies decide to
	// the fresh row and persists it within the same transaction, so that two
	// concurrent decisions on one booking serialize.
	Transition(id uint, decide func(current *model.Booking) error) (*model.Booking, error)
}

// PasswordHasher is the credential-hashing boundary. The core never stores
// or compares plaintext passwords itself.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// PropertyEvents receives property lifecycle notifications for downstream
// consumers such as search indexers. Implementations must not fail the
// calling operation.
type PropertyEvents interface {
	PropertyCreated(p *model.Property)
	PropertyUpdated(p *model.Property)
	PropertyDeleted(id uint)
}

// DetailCache caches public property-detail projections.
type DetailCache interface {
	Get(id uint) *model.PropertyDetail
	Set(id uint, detail *model.PropertyDetail)
	Delete(id uint)
}
