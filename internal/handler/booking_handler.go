package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yussufhh/Novella/internal/middleware"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/pkg/logger"
	"github.com/yussufhh/Novella/prometheus"
	"go.uber.org/zap"
)

// CreateBooking files a booking request for the authenticated renter. The
// total price is derived server-side from the property's monthly price.
func (h *Handler) CreateBooking(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BookingCounter.Inc()

	var req struct {
		PropertyID uint   `json:"property_id" validate:"required"`
		StartDate  string `json:"start_date" validate:"required"`
		EndDate    string `json:"end_date" validate:"required"`
		Message    string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse booking request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	booking, err := h.Bookings.Create(middleware.UserID(c), rental.BookingInput{
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Message:    req.Message,
	})
	if err != nil {
		log.Error("Failed to create booking",
			zap.Uint("property_id", req.PropertyID),
			zap.Error(err))
		return writeError(c, err)
	}

	log.Info("Booking requested",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("property_id", booking.PropertyID),
		zap.Float64("total_price", booking.TotalPrice))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking request created successfully",
		"booking": booking,
	})
}

// MyBookings returns the authenticated renter's bookings with their
// properties.
func (h *Handler) MyBookings(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	bookings, err := h.Bookings.ListForRenter(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// PropertyBookings returns every booking against the authenticated owner's
// properties, with property and renter contact details.
func (h *Handler) PropertyBookings(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	bookings, err := h.Bookings.ListForOwner(middleware.UserID(c))
	if err != nil {
		log.Error("Failed to list property bookings", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// UpdateBookingStatus moves a booking along its lifecycle.
func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse status update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	booking, err := h.Bookings.UpdateStatus(middleware.UserID(c), id, req.Status)
	if err != nil {
		log.Error("Failed to update booking status",
			zap.Uint("booking_id", id),
			zap.String("status", req.Status),
			zap.Error(err))
		return writeError(c, err)
	}

	prometheus.RecordBookingDecision(string(booking.Status))
	log.Info("Booking status updated",
		zap.Uint("booking_id", booking.ID),
		zap.String("status", string(booking.Status)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Booking status updated successfully",
		"booking": booking,
	})
}
