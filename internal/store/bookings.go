package store

import (
	"github.com/yussufhh/Novella/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore persists bookings in PostgreSQL.
type BookingStore struct {
	db *gorm.DB
}

// NewBookingStore builds a booking store over the given connection.
func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) Create(booking *model.Booking) error {
	return s.db.Create(booking).Error
}

func (s *BookingStore) GetByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *BookingStore) ListByRenter(renterID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.Where("renter_id = ?", renterID).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByOwner returns bookings against every live property of the owner.
func (s *BookingStore) ListByOwner(ownerID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.owner_id = ? AND properties.deleted_at IS NULL", ownerID).
		Order("bookings.id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Transition re-reads the booking under a row lock, lets decide inspect and
// mutate the fresh row, and writes it back in the same transaction. A decide
// error rolls everything back.
func (s *BookingStore) Transition(id uint, decide func(current *model.Booking) error) (*model.Booking, error) {
	var booking model.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			return translate(err)
		}
		if err := decide(&booking); err != nil {
			return err
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
