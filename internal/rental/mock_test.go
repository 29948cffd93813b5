package rental

import (
	"sort"
	"strings"
	"testing"

	"github.com/yussufhh/Novella/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// In-memory stores for exercising the services without a database.

type mockUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uint]*model.User)}
}

func (m *mockUserStore) Create(user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNoRecord
	}
	return user, nil
}

func (m *mockUserStore) GetByEmail(email string) (*model.User, error) {
	for _, user := range m.users {
		if strings.ToLower(user.Email) == email {
			return user, nil
		}
	}
	return nil, ErrNoRecord
}

func (m *mockUserStore) Update(user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ErrNoRecord
	}
	m.users[user.ID] = user
	return nil
}

type mockPropertyStore struct {
	properties map[uint]*model.Property
	nextID     uint
	bookings   *mockBookingStore
}

func newMockPropertyStore() *mockPropertyStore {
	return &mockPropertyStore{properties: make(map[uint]*model.Property)}
}

func (m *mockPropertyStore) Create(property *model.Property) error {
	m.nextID++
	property.ID = m.nextID
	m.properties[property.ID] = property
	return nil
}

func (m *mockPropertyStore) GetByID(id uint) (*model.Property, error) {
	property, ok := m.properties[id]
	if !ok {
		return nil, ErrNoRecord
	}
	return property, nil
}

func (m *mockPropertyStore) List(filter model.PropertyFilter) ([]model.Property, error) {
	var out []model.Property
	for _, p := range m.properties {
		if !p.IsAvailable {
			continue
		}
		if filter.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(filter.City)) {
			continue
		}
		if filter.PropertyType != "" && p.PropertyType != filter.PropertyType {
			continue
		}
		if filter.MinPrice != nil && p.PricePerMonth < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.PricePerMonth > *filter.MaxPrice {
			continue
		}
		if filter.MinBedrooms != nil && p.Bedrooms < *filter.MinBedrooms {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPropertyStore) ListByOwner(ownerID uint) ([]model.Property, error) {
	var out []model.Property
	for _, p := range m.properties {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPropertyStore) Update(property *model.Property) error {
	if _, ok := m.properties[property.ID]; !ok {
		return ErrNoRecord
	}
	m.properties[property.ID] = property
	return nil
}

func (m *mockPropertyStore) DeleteCancellingBookings(id uint) error {
	if _, ok := m.properties[id]; !ok {
		return ErrNoRecord
	}
	if m.bookings != nil {
		for _, b := range m.bookings.bookings {
			if b.PropertyID == id && !b.Status.Terminal() {
				b.Status = model.BookingCancelled
			}
		}
	}
	delete(m.properties, id)
	return nil
}

type mockBookingStore struct {
	bookings   map[uint]*model.Booking
	nextID     uint
	properties *mockPropertyStore
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[uint]*model.Booking)}
}

func (m *mockBookingStore) Create(booking *model.Booking) error {
	m.nextID++
	booking.ID = m.nextID
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockBookingStore) GetByID(id uint) (*model.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, ErrNoRecord
	}
	return booking, nil
}

func (m *mockBookingStore) ListByRenter(renterID uint) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.bookings {
		if b.RenterID == renterID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBookingStore) ListByOwner(ownerID uint) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.bookings {
		property, ok := m.properties.properties[b.PropertyID]
		if ok && property.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBookingStore) Transition(id uint, decide func(current *model.Booking) error) (*model.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, ErrNoRecord
	}
	if err := decide(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// fixture wires the three services over linked in-memory stores.
type fixture struct {
	users      *mockUserStore
	properties *mockPropertyStore
	bookings   *mockBookingStore
	identity   *IdentityService
	catalog    *CatalogService
	booking    *BookingService
}

func newFixture() *fixture {
	users := newMockUserStore()
	properties := newMockPropertyStore()
	bookings := newMockBookingStore()
	properties.bookings = bookings
	bookings.properties = properties

	hasher := &BcryptHasher{Cost: bcrypt.MinCost}
	return &fixture{
		users:      users,
		properties: properties,
		bookings:   bookings,
		identity:   NewIdentityService(users, hasher),
		catalog:    NewCatalogService(users, properties, nil, nil),
		booking:    NewBookingService(users, properties, bookings),
	}
}

func (f *fixture) registerUser(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	user, err := f.identity.Register(RegisterInput{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Phone:     "555-0000",
		Role:      string(role),
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}

func (f *fixture) createProperty(t *testing.T, ownerID uint, city string, price float64) *model.Property {
	t.Helper()
	property, err := f.catalog.Create(ownerID, PropertyInput{
		Title:         "Test listing",
		Description:   "A place",
		Address:       "1 Main St",
		City:          city,
		State:         "NY",
		ZipCode:       "10001",
		PropertyType:  "apartment",
		Bedrooms:      2,
		Bathrooms:     1,
		PricePerMonth: price,
	})
	if err != nil {
		t.Fatalf("failed to create property: %v", err)
	}
	return property
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected error kind %s, got %s (%v)", want, got, err)
	}
}
