package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	if c.Request().ContentLength == 0 {
		l.Warn("register_error", "status", 400, "reason", "missing body")
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		l.Warn("register_error", "status", 400, "reason", "missing required fields")
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	if _, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		case errors.Is(err, repo.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
		}
	}

	l.Info("register_success")
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	if c.Request().ContentLength == 0 {
		l.Warn("login_error", "status", 400, "reason", "missing body")
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
	})
}
