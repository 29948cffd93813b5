package rental

import (
	"testing"

	"github.com/yussufhh/Novella/internal/model"
)

func TestCreateBooking_OwnerDenied(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	_, err := f.booking.Create(owner.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	assertKind(t, err, KindNotAuthorized)
}

func TestCreateBooking_PricingExact(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2500)

	// 2025-02-01 to 2025-08-01 is 181 days
	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-02-01", EndDate: "2025-08-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := 2500 * (181.0 / 30.0)
	if booking.TotalPrice != want {
		t.Errorf("expected total price %v, got %v", want, booking.TotalPrice)
	}
	if booking.Status != model.BookingPending {
		t.Errorf("new bookings must start pending, got %s", booking.Status)
	}
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	_, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-03-01",
	})
	assertKind(t, err, KindInvalidDateRange)

	_, err = f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-04-01", EndDate: "2025-03-01",
	})
	assertKind(t, err, KindInvalidDateRange)
}

func TestCreateBooking_MalformedDates(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	_, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "01/03/2025", EndDate: "2025-04-01",
	})
	assertKind(t, err, KindValidation)

	_, err = f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "not-a-date",
	})
	assertKind(t, err, KindValidation)
}

func TestCreateBooking_PropertyUnavailable(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	off := false
	if _, err := f.catalog.Update(owner.ID, property.ID, PropertyUpdate{IsAvailable: &off}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	assertKind(t, err, KindPropertyUnavailable)
}

func TestCreateBooking_PropertyNotFound(t *testing.T) {
	f := newFixture()
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)

	_, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: 42, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	assertKind(t, err, KindNotFound)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// pending -> approved -> cancelled walks legal edges
	updated, err := f.booking.UpdateStatus(owner.ID, booking.ID, "approved")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != model.BookingApproved {
		t.Errorf("expected approved, got %s", updated.Status)
	}
	updated, err = f.booking.UpdateStatus(owner.ID, booking.ID, "cancelled")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != model.BookingCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}

	// cancelled is terminal
	for _, next := range []string{"pending", "approved", "rejected"} {
		_, err := f.booking.UpdateStatus(owner.ID, booking.ID, next)
		assertKind(t, err, KindInvalidTransition)
	}
}

func TestUpdateStatus_RejectedIsTerminal(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := f.booking.UpdateStatus(owner.ID, booking.ID, "rejected"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	_, err = f.booking.UpdateStatus(owner.ID, booking.ID, "approved")
	assertKind(t, err, KindInvalidTransition)
	if got := f.bookings.bookings[booking.ID].Status; got != model.BookingRejected {
		t.Errorf("failed transition must not change state, got %s", got)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = f.booking.UpdateStatus(owner.ID, booking.ID, "confirmed")
	assertKind(t, err, KindValidation)
}

func TestUpdateStatus_RenterMayOnlyCancel(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = f.booking.UpdateStatus(renter.ID, booking.ID, "approved")
	assertKind(t, err, KindNotAuthorized)

	updated, err := f.booking.UpdateStatus(renter.ID, booking.ID, "cancelled")
	if err != nil {
		t.Fatalf("renter cancel failed: %v", err)
	}
	if updated.Status != model.BookingCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}
}

func TestUpdateStatus_StrangerDenied(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	stranger := f.registerUser(t, "stranger@test.com", model.RoleOwner)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	booking, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = f.booking.UpdateStatus(stranger.ID, booking.ID, "approved")
	assertKind(t, err, KindNotAuthorized)
	if got := f.bookings.bookings[booking.ID].Status; got != model.BookingPending {
		t.Errorf("denied decision must not change state, got %s", got)
	}
}

func TestListForRenter_Enrichment(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	if _, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := f.booking.ListForRenter(renter.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one booking, got %d", len(got))
	}
	if got[0].Property == nil || got[0].Property.ID != property.ID {
		t.Errorf("renter bookings must carry their property, got %+v", got[0].Property)
	}
}

func TestListForOwner_Enrichment(t *testing.T) {
	f := newFixture()
	owner := f.registerUser(t, "owner@test.com", model.RoleOwner)
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)
	property := f.createProperty(t, owner.ID, "New York", 2000)

	if _, err := f.booking.Create(renter.ID, BookingInput{
		PropertyID: property.ID, StartDate: "2025-03-01", EndDate: "2025-04-01",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := f.booking.ListForOwner(owner.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one booking, got %d", len(got))
	}
	if got[0].Property == nil || got[0].Property.ID != property.ID {
		t.Errorf("owner bookings must carry the property, got %+v", got[0].Property)
	}
	if got[0].Renter == nil || got[0].Renter.Email != "renter@test.com" {
		t.Errorf("owner bookings must carry the renter contact, got %+v", got[0].Renter)
	}
}

func TestListForOwner_RenterDenied(t *testing.T) {
	f := newFixture()
	renter := f.registerUser(t, "renter@test.com", model.RoleRenter)

	_, err := f.booking.ListForOwner(renter.ID)
	assertKind(t, err, KindNotAuthorized)
}
