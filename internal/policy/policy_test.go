package policy

import (
	"testing"

	"github.com/yussufhh/Novella/internal/model"
)

func TestRoleRules(t *testing.T) {
	if !CanCreateProperty(model.RoleOwner) || CanCreateProperty(model.RoleRenter) {
		t.Error("only owners may create properties")
	}
	if !CanCreateBooking(model.RoleRenter) || CanCreateBooking(model.RoleOwner) {
		t.Error("only renters may create bookings")
	}
	if !CanListOwnerBookings(model.RoleOwner) || CanListOwnerBookings(model.RoleRenter) {
		t.Error("only owners may list property bookings")
	}
}

func TestCanMutateProperty(t *testing.T) {
	property := &model.Property{ID: 1, OwnerID: 7}
	if !CanMutateProperty(7, property) {
		t.Error("the owner may mutate their property")
	}
	if CanMutateProperty(8, property) {
		t.Error("anyone else is denied")
	}
	if CanMutateProperty(7, nil) {
		t.Error("a missing property is denied")
	}
}

func TestCanDecideBooking(t *testing.T) {
	property := &model.Property{ID: 1, OwnerID: 7}
	booking := &model.Booking{ID: 2, PropertyID: 1, RenterID: 9}

	if !CanDecideBooking(7, booking, property, model.BookingApproved) {
		t.Error("the property owner decides freely")
	}
	if !CanDecideBooking(9, booking, property, model.BookingCancelled) {
		t.Error("the renter may cancel their own booking")
	}
	if CanDecideBooking(9, booking, property, model.BookingApproved) {
		t.Error("the renter may not approve")
	}
	if CanDecideBooking(5, booking, property, model.BookingCancelled) {
		t.Error("strangers are denied")
	}
}
