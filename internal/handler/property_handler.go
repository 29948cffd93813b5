package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yussufhh/Novella/internal/middleware"
	"github.com/yussufhh/Novella/internal/model"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/pkg/logger"
	"github.com/yussufhh/Novella/prometheus"
	"go.uber.org/zap"
)

// ListProperties returns available listings matching the query filters. All
// filters compose with AND; no filter means no restriction.
func (h *Handler) ListProperties(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("list")

	var filter model.PropertyFilter
	filter.City = c.QueryParam("city")
	filter.PropertyType = c.QueryParam("property_type")
	if raw := c.QueryParam("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price", "kind": rental.KindValidation})
		}
		filter.MinPrice = &value
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price", "kind": rental.KindValidation})
		}
		filter.MaxPrice = &value
	}
	if raw := c.QueryParam("bedrooms"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bedrooms", "kind": rental.KindValidation})
		}
		filter.MinBedrooms = &value
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.Catalog.List(filter)
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetProperty returns a single listing with the owner's public contact.
func (h *Handler) GetProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("get")

	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	detail, err := h.Catalog.Get(id)
	if err != nil {
		log.Error("Property lookup failed", zap.Uint("property_id", id), zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"property": detail})
}

type propertyRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	State         string   `json:"state" validate:"required"`
	ZipCode       string   `json:"zip_code" validate:"required"`
	PropertyType  string   `json:"property_type" validate:"required"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms     float64  `json:"bathrooms" validate:"gte=0"`
	SquareFeet    *int     `json:"square_feet"`
	PricePerMonth float64  `json:"price_per_month" validate:"required,gt=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// CreateProperty lists a new property for the authenticated owner.
func (h *Handler) CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("create")

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse property request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	property, err := h.Catalog.Create(middleware.UserID(c), rental.PropertyInput{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		PropertyType:  req.PropertyType,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		PricePerMonth: req.PricePerMonth,
		Amenities:     req.Amenities,
		Images:        req.Images,
	})
	if err != nil {
		log.Error("Failed to create property", zap.Error(err))
		return writeError(c, err)
	}

	log.Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.String("title", property.Title),
		zap.String("city", property.City))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Property created successfully",
		"property": property,
	})
}

// UpdateProperty mutates a listing. Only the property's owner may do so;
// owner_id and id are immutable.
func (h *Handler) UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("update")

	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req struct {
		Title         *string  `json:"title"`
		Description   *string  `json:"description"`
		Address       *string  `json:"address"`
		City          *string  `json:"city"`
		State         *string  `json:"state"`
		ZipCode       *string  `json:"zip_code"`
		PropertyType  *string  `json:"property_type"`
		Bedrooms      *int     `json:"bedrooms"`
		Bathrooms     *float64 `json:"bathrooms"`
		SquareFeet    *int     `json:"square_feet"`
		PricePerMonth *float64 `json:"price_per_month"`
		IsAvailable   *bool    `json:"is_available"`
		Amenities     []string `json:"amenities"`
		Images        []string `json:"images"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse property update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.Catalog.Update(middleware.UserID(c), id, rental.PropertyUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		PropertyType:  req.PropertyType,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		PricePerMonth: req.PricePerMonth,
		IsAvailable:   req.IsAvailable,
		Amenities:     req.Amenities,
		Images:        req.Images,
	})
	if err != nil {
		log.Error("Failed to update property", zap.Uint("property_id", id), zap.Error(err))
		return writeError(c, err)
	}

	log.Info("Property updated", zap.Uint("property_id", property.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Property updated successfully",
		"property": property,
	})
}

// DeleteProperty removes a listing. Pending and approved bookings against it
// are cancelled in the same transaction.
func (h *Handler) DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("delete")

	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.Catalog.Delete(middleware.UserID(c), id); err != nil {
		log.Error("Failed to delete property", zap.Uint("property_id", id), zap.Error(err))
		return writeError(c, err)
	}

	log.Info("Property deleted", zap.Uint("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property deleted successfully"})
}

// MyProperties returns every listing of the authenticated owner.
func (h *Handler) MyProperties(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.Catalog.ListOwned(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, rental.NewError(rental.KindValidation, "invalid id")
	}
	return uint(id), nil
}
