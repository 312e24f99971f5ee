package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitaly/portal/internal/api/metrics"
	"github.com/habitaly/portal/internal/api/middleware"
	"github.com/habitaly/portal/internal/core/domain"
	"github.com/habitaly/portal/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type sessionResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type restoreResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates with email and password and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	snap, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", loginResult(err)).Inc()
		status := http.StatusUnauthorized
		switch err {
		case domain.ErrInvalidCredentials:
			status = http.StatusUnauthorized
		case domain.ErrSessionSuperseded:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Token: snap.Token, User: &snap.User})
}

// Register creates a new account. It does not establish a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrUserExists:
			status = http.StatusConflict
		case domain.ErrValidation:
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, sessionResponse{User: user})
}

// Logout destroys the current session. Repeating it is a no-op.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		// No Auth middleware on this route: read the header directly so a
		// stale client can still log out with an expired token.
		token, _ = middleware.BearerToken(c)
	}

	if err := h.sessions.Logout(c.Request().Context(), token); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.LogoutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Session restores an existing session from its token. A missing, expired,
// or corrupt snapshot reads as "not authenticated", never as an error.
//
// @Summary      Restore session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  restoreResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	token, _ := middleware.BearerToken(c)

	snap, err := h.sessions.CheckExistingSession(c.Request().Context(), token)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			metrics.SessionRestoresTotal.WithLabelValues("no_session").Inc()
			return c.JSON(http.StatusOK, restoreResponse{Authenticated: false})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	return c.JSON(http.StatusOK, restoreResponse{Authenticated: true, User: &snap.User})
}

// ForgotPassword starts the reset round trip. The response is the same
// whether or not the address has an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("forgot", "validation").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.sessions.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.PasswordResetsTotal.WithLabelValues("forgot", "ok").Inc()
	return c.JSON(http.StatusAccepted, messageResponse{
		Message: "if the address exists, a reset link has been sent",
	})
}

// ResetPassword redeems a reset token. Mismatched passwords fail before the
// token is even looked at.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("reset", "validation").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err := h.sessions.ResetPassword(c.Request().Context(), req.Token, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		result := "error"
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrValidation:
			result, status = "validation", http.StatusBadRequest
		case domain.ErrResetTokenInvalid:
			result, status = "invalid_token", http.StatusBadRequest
		}
		metrics.PasswordResetsTotal.WithLabelValues("reset", result).Inc()
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.PasswordResetsTotal.WithLabelValues("reset", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// LoginWithGoogle authenticates through Google.
//
// @Summary      Login with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      socialLoginRequest  true  "Provider assertion"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/google [post]
func (h *AuthHandler) LoginWithGoogle(c echo.Context) error {
	return h.socialLogin(c, "google", h.sessions.LoginWithGoogle)
}

// LoginWithFacebook authenticates through Facebook.
//
// @Summary      Login with Facebook
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      socialLoginRequest  true  "Provider assertion"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/facebook [post]
func (h *AuthHandler) LoginWithFacebook(c echo.Context) error {
	return h.socialLogin(c, "facebook", h.sessions.LoginWithFacebook)
}

func (h *AuthHandler) socialLogin(
	c echo.Context,
	provider string,
	login func(ctx context.Context, assertion string) (*domain.SessionSnapshot, error),
) error {
	var req socialLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	snap, err := login(c.Request().Context(), req.Assertion)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(provider, loginResult(err)).Inc()
		status := http.StatusUnauthorized
		if err == domain.ErrSessionSuperseded {
			status = http.StatusConflict
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.LoginsTotal.WithLabelValues(provider, "success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Token: snap.Token, User: &snap.User})
}

func loginResult(err error) string {
	switch err {
	case domain.ErrInvalidCredentials:
		return "invalid_credentials"
	case domain.ErrSessionSuperseded:
		return "superseded"
	case domain.ErrProviderUnavailable:
		return "provider_unavailable"
	default:
		return "error"
	}
}
