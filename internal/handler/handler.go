// Package handler exposes the rental services over HTTP. Handlers bind and
// validate requests, delegate to the core services and translate the error
// taxonomy into status codes in one place.
package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/pkg/logger"
	"github.com/yussufhh/Novella/prometheus"
	"go.uber.org/zap"
)

// Handler carries the core services behind the REST surface.
type Handler struct {
	Identity *rental.IdentityService
	Catalog  *rental.CatalogService
	Bookings *rental.BookingService
}

// New builds the handler set.
func New(identity *rental.IdentityService, catalog *rental.CatalogService, bookings *rental.BookingService) *Handler {
	return &Handler{Identity: identity, Catalog: catalog, Bookings: bookings}
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns the request validator mounted on the echo instance.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return rental.NewError(rental.KindValidation, err.Error())
	}
	return nil
}

var kindStatus = map[rental.Kind]int{
	rental.KindValidation:          http.StatusBadRequest,
	rental.KindInvalidDateRange:    http.StatusBadRequest,
	rental.KindInvalidTransition:   http.StatusBadRequest,
	rental.KindPropertyUnavailable: http.StatusBadRequest,
	rental.KindInvalidCredentials:  http.StatusUnauthorized,
	rental.KindNotAuthorized:       http.StatusForbidden,
	rental.KindNotFound:            http.StatusNotFound,
	rental.KindEmailTaken:          http.StatusConflict,
	rental.KindInternal:            http.StatusInternalServerError,
}

// writeError maps a service error onto the wire. Unexpected errors are
// reported generically so no storage detail leaks to callers.
func writeError(c echo.Context, err error) error {
	kind := rental.KindOf(err)
	prometheus.RecordRentalError(string(kind))

	status, ok := kindStatus[kind]
	if !ok || kind == rental.KindInternal {
		logger.FromContext(c).Error("Unexpected service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error", "kind": rental.KindInternal})
	}
	return c.JSON(status, echo.Map{"error": err.Error(), "kind": kind})
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}
