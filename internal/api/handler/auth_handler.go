package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/hostel-api/internal/api/metrics"
	"github.com/hostelhub/hostel-api/internal/api/middleware"
	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

// AuthHandler exposes registration, login, logout, and profile endpoints.
type AuthHandler struct {
	authService ports.AuthService
	session     *SessionWriter
}

func NewAuthHandler(authService ports.AuthService, session *SessionWriter) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Message: "Please Provide username, email, and password to proceed",
				Details: ve.Details,
			})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Message: "User already registered. Please try login"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please Provide username, email, and password to proceed"})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "Account Created Successfully",
		User:    user.Sanitize(),
	})
}

// Login verifies credentials, issues the session token, and propagates it
// through both cookies and the response body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please Provide email and password to proceed"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Message: "User not found. Please register before login"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Unauthorized. Check login credentials"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Message: "Too many login attempts. Try again later"})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	// Cookies and body are written from the same token and projection.
	profile := user.Sanitize()
	if err := h.session.Write(c, token, profile); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:   "Login Successfully",
		Token:     token,
		UserID:    profile.ID,
		Role:      profile.Role,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
		Email:     profile.Email,
	})
}

// Logout clears both session cookies. The token itself stays valid until
// expiry; there is no server-side revocation list.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated user's sanitized record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized. No token provided.")
	}
	return c.JSON(http.StatusOK, userResponse{User: user.Sanitize()})
}

// Dashboard returns the authenticated user's dashboard payload.
//
// @Summary      User dashboard
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/userdashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized. No token provided.")
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Message: "User dashboard",
		User:    user.Sanitize(),
	})
}

// UpdateProfile rewrites the caller's self-mutable profile fields and
// returns the refreshed projection. Email and role never change here.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/me [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized. No token provided.")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:    user.ID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: updated.Sanitize()})
}
