package rental

import (
	"errors"

	"github.com/yussufhh/Novella/internal/model"
	"github.com/yussufhh/Novella/internal/policy"
)

// BookingService owns the booking lifecycle: request creation, enriched
// listings for both sides and owner decisions.
type BookingService struct {
	users      UserStore
	properties PropertyStore
	bookings   BookingStore
}

// NewBookingService builds a booking engine over the given stores.
func NewBookingService(users UserStore, properties PropertyStore, bookings BookingStore) *BookingService {
	return &BookingService{users: users, properties: properties, bookings: bookings}
}

// BookingInput carries a new booking request. Dates arrive as YYYY-MM-DD
// strings; the total price is always derived, never client-supplied.
type BookingInput struct {
	PropertyID uint
	StartDate  string
	EndDate    string
	Message    string
}

// Create files a pending booking request for renterID.
func (s *BookingService) Create(renterID uint, in BookingInput) (*model.Booking, error) {
	renter, err := s.users.GetByID(renterID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotAuthorized, "only renters can create bookings")
		}
		return nil, err
	}
	if !policy.CanCreateBooking(renter.Role) {
		return nil, NewError(KindNotAuthorized, "only renters can create bookings")
	}

	property, err := s.properties.GetByID(in.PropertyID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "property not found")
		}
		return nil, err
	}
	if !property.IsAvailable {
		return nil, NewError(KindPropertyUnavailable, "property is not available")
	}

	start, err := model.ParseDate(in.StartDate)
	if err != nil {
		return nil, NewError(KindValidation, "invalid start_date, expected YYYY-MM-DD")
	}
	end, err := model.ParseDate(in.EndDate)
	if err != nil {
		return nil, NewError(KindValidation, "invalid end_date, expected YYYY-MM-DD")
	}
	if !start.Time.Before(end.Time) {
		return nil, NewError(KindInvalidDateRange, "end_date must be after start_date")
	}

	booking := &model.Booking{
		PropertyID: property.ID,
		RenterID:   renterID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: model.TotalPrice(property.PricePerMonth, start, end),
		Status:     model.BookingPending,
		Message:    in.Message,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForRenter returns the renter's bookings, each enriched with its
// property. Bookings that outlived a deleted listing come back with a nil
// property.
func (s *BookingService) ListForRenter(renterID uint) ([]model.BookingForRenter, error) {
	bookings, err := s.bookings.ListByRenter(renterID)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookingForRenter, 0, len(bookings))
	for _, b := range bookings {
		entry := model.BookingForRenter{Booking: b}
		if property, err := s.properties.GetByID(b.PropertyID); err == nil {
			entry.Property = property
		} else if !errors.Is(err, ErrNoRecord) {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListForOwner returns every booking against ownerID's properties, enriched
// with the property and the renter's contact details.
func (s *BookingService) ListForOwner(ownerID uint) ([]model.BookingForOwner, error) {
	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotAuthorized, "only owners can view property bookings")
		}
		return nil, err
	}
	if !policy.CanListOwnerBookings(owner.Role) {
		return nil, NewError(KindNotAuthorized, "only owners can view property bookings")
	}

	bookings, err := s.bookings.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookingForOwner, 0, len(bookings))
	for _, b := range bookings {
		entry := model.BookingForOwner{Booking: b}
		if property, err := s.properties.GetByID(b.PropertyID); err == nil {
			entry.Property = property
		} else if !errors.Is(err, ErrNoRecord) {
			return nil, err
		}
		if renter, err := s.users.GetByID(b.RenterID); err == nil {
			entry.Renter = model.RenterContactOf(renter)
		} else if !errors.Is(err, ErrNoRecord) {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// UpdateStatus moves a booking along the lifecycle. The property's owner may
// perform any legal transition; the booking's renter may only cancel. The
// transition check runs against the current status re-read inside the same
// transaction as the write.
func (s *BookingService) UpdateStatus(actorID, bookingID uint, newStatus string) (*model.Booking, error) {
	next, ok := model.ParseBookingStatus(newStatus)
	if !ok {
		return nil, NewError(KindValidation, "status must be one of pending, approved, rejected, cancelled")
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "booking not found")
		}
		return nil, err
	}
	property, err := s.properties.GetByID(booking.PropertyID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "property not found")
		}
		return nil, err
	}
	if !policy.CanDecideBooking(actorID, booking, property, next) {
		return nil, NewError(KindNotAuthorized, "you can only update bookings for your own properties")
	}

	return s.bookings.Transition(bookingID, func(current *model.Booking) error {
		if !current.Status.CanTransitionTo(next) {
			return NewError(KindInvalidTransition, "cannot move booking from "+string(current.Status)+" to "+string(next))
		}
		current.Status = next
		return nil
	})
}
