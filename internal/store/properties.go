package store

import (
	"strings"

	"github.com/yussufhh/Novella/internal/model"
	"github.com/yussufhh/Novella/internal/rental"
	"gorm.io/gorm"
)

// PropertyStore persists properties in PostgreSQL.
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore builds a property store over the given connection.
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

func (s *PropertyStore) Create(property *model.Property) error {
	return s.db.Create(property).Error
}

func (s *PropertyStore) GetByID(id uint) (*model.Property, error) {
	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

// List returns available properties matching the filter, ordered by id so a
// fixed data snapshot always lists in the same order.
func (s *PropertyStore) List(filter model.PropertyFilter) ([]model.Property, error) {
	query := s.db.Where("is_available = ?", true)
	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.MinPrice != nil {
		query = query.Where("price_per_month >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_month <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *filter.MinBedrooms)
	}

	var properties []model.Property
	if err := query.Order("id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertyStore) ListByOwner(ownerID uint) ([]model.Property, error) {
	var properties []model.Property
	if err := s.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertyStore) Update(property *model.Property) error {
	return s.db.Save(property).Error
}

// DeleteCancellingBookings soft-deletes the property and cancels its pending
// and approved bookings in one transaction. Either both happen or neither.
func (s *PropertyStore) DeleteCancellingBookings(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Booking{}).
			Where("property_id = ? AND status IN ?", id,
				[]model.BookingStatus{model.BookingPending, model.BookingApproved}).
			Update("status", model.BookingCancelled).Error
		if err != nil {
			return err
		}
		result := tx.Delete(&model.Property{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return rental.ErrNoRecord
		}
		return nil
	})
}
