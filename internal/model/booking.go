package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a status string coming in over the wire.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingApproved, BookingRejected, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition may leave this state.
func (s BookingStatus) Terminal() bool {
	return s == BookingRejected || s == BookingCancelled
}

// CanTransitionTo reports whether next is a legal edge from s.
//
//	pending  -> approved | rejected | cancelled
//	approved -> cancelled
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingRejected || next == BookingCancelled
	case BookingApproved:
		return next == BookingCancelled
	}
	return false
}

const dateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals to and from
// ISO-8601 YYYY-MM-DD on the wire and maps to a SQL date column.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %q, expected \"YYYY-MM-DD\"", string(data))
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// Booking represents a rental request made by a renter against a property.
// property_id and renter_id are immutable after creation.
type Booking struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	PropertyID uint           `json:"property_id" gorm:"index;not null"`
	RenterID   uint           `json:"renter_id" gorm:"index;not null"`
	StartDate  Date           `json:"start_date" gorm:"type:date;not null"`
	EndDate    Date           `json:"end_date" gorm:"type:date;not null"`
	TotalPrice float64        `json:"total_price" gorm:"not null"`
	Status     BookingStatus  `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Message    string         `json:"message,omitempty" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TotalPrice computes the prorated booking price: a linear fraction of the
// monthly price at 30 days per month. Not calendar-month aware. The raw
// floating-point result is kept so the value is exactly reproducible.
func TotalPrice(pricePerMonth float64, start, end Date) float64 {
	days := start.DaysUntil(end)
	return pricePerMonth * (float64(days) / 30.0)
}

// BookingForRenter is a booking enriched with its property, as returned to
// the requesting renter.
type BookingForRenter struct {
	Booking
	Property *Property `json:"property"`
}

// BookingForOwner is a booking enriched with its property and the renter's
// contact details, as returned to the property owner.
type BookingForOwner struct {
	Booking
	Property *Property      `json:"property"`
	Renter   *RenterContact `json:"renter"`
}
