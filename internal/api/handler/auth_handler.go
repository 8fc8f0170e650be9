package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/api/metrics"
	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// AuthHandler serves signup and login for a single role. The router mounts
// one instance under /admin and one under /users.
type AuthHandler struct {
	role   domain.Role
	auth   ports.AuthService
	tokens ports.TokenService
}

func NewAuthHandler(role domain.Role, auth ports.AuthService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{role: role, auth: auth, tokens: tokens}
}

func (h *AuthHandler) createdMessage() string {
	if h.role == domain.RoleAdmin {
		return "Admin created successfully"
	}
	return "User created successfully"
}

// Signup creates an account and returns a token for it.
//
// @Summary      Sign up
// @Description  Creates an admin (/admin/signup) or user (/users/signup) account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /admin/signup [post]
// @Router       /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	token, err := h.auth.Signup(c.Request().Context(), h.role, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return badRequest(err)
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues(h.role.String()).Inc()
	return c.JSON(http.StatusOK, tokenResponse{Message: h.createdMessage(), Token: token})
}

// Login verifies the username/password headers and returns a fresh token.
//
// @Summary      Log in
// @Description  Credentials travel in the username and password request headers.
// @Tags         auth
// @Produce      json
// @Param        username  header    string  true  "Username"
// @Param        password  header    string  true  "Password"
// @Success      200       {object}  tokenResponse
// @Failure      401       {object}  messageResponse
// @Failure      403       {object}  messageResponse
// @Failure      500       {object}  messageResponse
// @Router       /admin/login [post]
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.Request().Header.Get("username")
	password := c.Request().Header.Get("password")
	if username == "" || password == "" {
		return domain.ErrMissingAuthHeader
	}

	if err := h.auth.Authenticate(c.Request().Context(), h.role, username, password); err != nil {
		metrics.LoginsTotal.WithLabelValues(h.role.String(), loginResult(err)).Inc()
		return err
	}

	token, err := h.tokens.Issue(username, h.role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(h.role.String(), "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(h.role.String(), "success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Message: "Logged in successfully", Token: token})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, domain.ErrWrongPassword):
		return "wrong_password"
	default:
		return "error"
	}
}
