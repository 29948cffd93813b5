package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON text column.
// Serialization happens only here, at the storage boundary; the rest of the
// code works with plain slices.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Property represents a rental listing owned by a user with the owner role.
type Property struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OwnerID       uint           `json:"owner_id" gorm:"index;not null"`
	Title         string         `json:"title" gorm:"type:varchar(200);not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Address       string         `json:"address" gorm:"type:varchar(255);not null"`
	City          string         `json:"city" gorm:"type:varchar(100);not null"`
	State         string         `json:"state" gorm:"type:varchar(100);not null"`
	ZipCode       string         `json:"zip_code" gorm:"type:varchar(20);not null"`
	PropertyType  string         `json:"property_type" gorm:"type:varchar(50);not null"`
	Bedrooms      int            `json:"bedrooms" gorm:"not null"`
	Bathrooms     float64        `json:"bathrooms" gorm:"not null"`
	SquareFeet    *int           `json:"square_feet,omitempty"`
	PricePerMonth float64        `json:"price_per_month" gorm:"not null"`
	IsAvailable   bool           `json:"is_available" gorm:"default:true"`
	Amenities     StringList     `json:"amenities" gorm:"type:text"`
	Images        StringList     `json:"images" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// PropertyDetail is a property enriched with the owner's public contact
// projection, as returned by public property lookups.
type PropertyDetail struct {
	Property
	Owner *OwnerContact `json:"owner"`
}

// PropertyFilter holds the optional listing filters. Nil/empty fields mean no
// restriction; provided filters compose with AND.
type PropertyFilter struct {
	City         string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
}
