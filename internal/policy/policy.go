// Package policy centralizes the access-control rules consulted by the
// catalog and booking services. All functions are pure: they decide on the
// actor and resource handed to them and never touch storage.
package policy

import "github.com/yussufhh/Novella/internal/model"

// CanCreateProperty reports whether a user with the given role may list
// properties.
func CanCreateProperty(role model.Role) bool {
	return role == model.RoleOwner
}

// CanMutateProperty reports whether the actor may update or delete the
// property. Only the owning user qualifies; role alone is not enough.
func CanMutateProperty(actorID uint, property *model.Property) bool {
	return property != nil && property.OwnerID == actorID
}

// CanCreateBooking reports whether a user with the given role may request
// bookings.
func CanCreateBooking(role model.Role) bool {
	return role == model.RoleRenter
}

// CanListOwnerBookings reports whether the role may view bookings across
// owned properties.
func CanListOwnerBookings(role model.Role) bool {
	return role == model.RoleOwner
}

// CanDecideBooking reports whether the actor may move the booking to next.
// The property owner decides freely; the booking's renter may only cancel
// their own request. Transition legality is checked separately by the
// booking engine.
func CanDecideBooking(actorID uint, booking *model.Booking, property *model.Property, next model.BookingStatus) bool {
	if booking == nil || property == nil {
		return false
	}
	if property.OwnerID == actorID {
		return true
	}
	return booking.RenterID == actorID && next == model.BookingCancelled
}
