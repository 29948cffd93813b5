package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yussufhh/Novella/internal/middleware"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/pkg/jwtutil"
	"github.com/yussufhh/Novella/pkg/logger"
	"github.com/yussufhh/Novella/prometheus"
	"go.uber.org/zap"
)

// Signup registers a new user and returns an access token.
func (h *Handler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Phone     string `json:"phone"`
		UserType  string `json:"user_type" validate:"required,oneof=owner renter"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.Identity.Register(rental.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.UserType,
	})
	if err != nil {
		log.Error("Signup failed", zap.String("email", req.Email), zap.Error(err))
		return writeError(c, err)
	}

	token, err := jwtutil.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return writeError(c, err)
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("user_type", string(user.Role)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "User created successfully",
		"access_token": token,
		"user":         user,
	})
}

// Login verifies credentials and returns an access token.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Identity.Authenticate(req.Email, req.Password)
	if err != nil {
		log.Error("Login failed", zap.String("email", req.Email))
		return writeError(c, err)
	}

	token, err := jwtutil.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return writeError(c, err)
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login successful",
		"access_token": token,
		"user":         user,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c echo.Context) error {
	user, err := h.Identity.Get(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile edits the caller's display fields. Email and role stay as
// they were at signup.
func (h *Handler) UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}

	user, err := h.Identity.UpdateProfile(middleware.UserID(c), rental.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword swaps the caller's credential after verifying the current one.
func (h *Handler) ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request", "kind": rental.KindValidation})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.Identity.ChangePassword(middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	log.Info("Password changed", zap.Uint("user_id", middleware.UserID(c)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
