package rental

import (
	"errors"

	"github.com/yussufhh/Novella/internal/model"
	"github.com/yussufhh/Novella/internal/policy"
)

// CatalogService owns property listings: public search, ownership-guarded
// mutation and the public owner projection.
type CatalogService struct {
	users      UserStore
	properties PropertyStore
	events     PropertyEvents
	cache      DetailCache
}

// NewCatalogService builds a catalog over the given stores. events and cache
// may be nil.
func NewCatalogService(users UserStore, properties PropertyStore, events PropertyEvents, cache DetailCache) *CatalogService {
	return &CatalogService{users: users, properties: properties, events: events, cache: cache}
}

// PropertyInput carries the fields of a new listing.
type PropertyInput struct {
	Title         string
	Description   string
	Address       string
	City          string
	State         string
	ZipCode       string
	PropertyType  string
	Bedrooms      int
	Bathrooms     float64
	SquareFeet    *int
	PricePerMonth float64
	Amenities     []string
	Images        []string
}

func (in *PropertyInput) validate() error {
	switch {
	case in.Title == "", in.Description == "", in.Address == "", in.City == "",
		in.State == "", in.ZipCode == "", in.PropertyType == "":
		return NewError(KindValidation, "title, description, address, city, state, zip_code and property_type are required")
	case in.Bedrooms < 0:
		return NewError(KindValidation, "bedrooms must not be negative")
	case in.Bathrooms < 0:
		return NewError(KindValidation, "bathrooms must not be negative")
	case in.SquareFeet != nil && *in.SquareFeet < 0:
		return NewError(KindValidation, "square_feet must not be negative")
	case in.PricePerMonth <= 0:
		return NewError(KindValidation, "price_per_month must be greater than zero")
	}
	return nil
}

// List returns available properties matching the filter, ordered by id.
func (s *CatalogService) List(filter model.PropertyFilter) ([]model.Property, error) {
	return s.properties.List(filter)
}

// Get returns a property with the owner's public contact projection. The
// owner's email is never part of it.
func (s *CatalogService) Get(id uint) (*model.PropertyDetail, error) {
	if s.cache != nil {
		if detail := s.cache.Get(id); detail != nil {
			return detail, nil
		}
	}
	property, err := s.properties.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "property not found")
		}
		return nil, err
	}
	detail := &model.PropertyDetail{Property: *property}
	if owner, err := s.users.GetByID(property.OwnerID); err == nil {
		detail.Owner = model.OwnerContactOf(owner)
	} else if !errors.Is(err, ErrNoRecord) {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(id, detail)
	}
	return detail, nil
}

// Create lists a new property for ownerID. New listings start available.
func (s *CatalogService) Create(ownerID uint, in PropertyInput) (*model.Property, error) {
	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotAuthorized, "only owners can create property listings")
		}
		return nil, err
	}
	if !policy.CanCreateProperty(owner.Role) {
		return nil, NewError(KindNotAuthorized, "only owners can create property listings")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	property := &model.Property{
		OwnerID:       ownerID,
		Title:         in.Title,
		Description:   in.Description,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		PropertyType:  in.PropertyType,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		SquareFeet:    in.SquareFeet,
		PricePerMonth: in.PricePerMonth,
		IsAvailable:   true,
		Amenities:     model.StringList(in.Amenities),
		Images:        model.StringList(in.Images),
	}
	if property.Amenities == nil {
		property.Amenities = model.StringList{}
	}
	if property.Images == nil {
		property.Images = model.StringList{}
	}
	if err := s.properties.Create(property); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PropertyCreated(property)
	}
	return property, nil
}

// PropertyUpdate carries the whitelisted mutable fields. Nil means leave
// unchanged; id and owner_id cannot be touched.
type PropertyUpdate struct {
	Title         *string
	Description   *string
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	PropertyType  *string
	Bedrooms      *int
	Bathrooms     *float64
	SquareFeet    *int
	PricePerMonth *float64
	IsAvailable   *bool
	Amenities     []string
	Images        []string
}

// Update mutates a listing. Only the property's owner may do so.
func (s *CatalogService) Update(actorID, id uint, in PropertyUpdate) (*model.Property, error) {
	property, err := s.ownedProperty(actorID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		property.Title = *in.Title
	}
	if in.Description != nil {
		property.Description = *in.Description
	}
	if in.Address != nil {
		property.Address = *in.Address
	}
	if in.City != nil {
		property.City = *in.City
	}
	if in.State != nil {
		property.State = *in.State
	}
	if in.ZipCode != nil {
		property.ZipCode = *in.ZipCode
	}
	if in.PropertyType != nil {
		property.PropertyType = *in.PropertyType
	}
	if in.Bedrooms != nil {
		property.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		property.Bathrooms = *in.Bathrooms
	}
	if in.SquareFeet != nil {
		property.SquareFeet = in.SquareFeet
	}
	if in.PricePerMonth != nil {
		property.PricePerMonth = *in.PricePerMonth
	}
	if in.IsAvailable != nil {
		property.IsAvailable = *in.IsAvailable
	}
	if in.Amenities != nil {
		property.Amenities = model.StringList(in.Amenities)
	}
	if in.Images != nil {
		property.Images = model.StringList(in.Images)
	}

	check := PropertyInput{
		Title: property.Title, Description: property.Description,
		Address: property.Address, City: property.City, State: property.State,
		ZipCode: property.ZipCode, PropertyType: property.PropertyType,
		Bedrooms: property.Bedrooms, Bathrooms: property.Bathrooms,
		SquareFeet: property.SquareFeet, PricePerMonth: property.PricePerMonth,
	}
	if err := check.validate(); err != nil {
		return nil, err
	}

	if err := s.properties.Update(property); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Delete(id)
	}
	if s.events != nil {
		s.events.PropertyUpdated(property)
	}
	return property, nil
}

// Delete removes a listing. All pending and approved bookings against it are
// cancelled in the same transaction so booking history survives the listing.
func (s *CatalogService) Delete(actorID, id uint) error {
	if _, err := s.ownedProperty(actorID, id); err != nil {
		return err
	}
	if err := s.properties.DeleteCancellingBookings(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(id)
	}
	if s.events != nil {
		s.events.PropertyDeleted(id)
	}
	return nil
}

// ListOwned returns every property listed by ownerID.
func (s *CatalogService) ListOwned(ownerID uint) ([]model.Property, error) {
	return s.properties.ListByOwner(ownerID)
}

func (s *CatalogService) ownedProperty(actorID, id uint) (*model.Property, error) {
	property, err := s.properties.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "property not found")
		}
		return nil, err
	}
	if !policy.CanMutateProperty(actorID, property) {
		return nil, NewError(KindNotAuthorized, "you can only manage your own properties")
	}
	return property, nil
}
