package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
)

// RefreshCookie nombre de la cookie HttpOnly con el refresh token.
const RefreshCookie = "refresh_token"

const refreshCookiePath = "/api/auth"

// AuthHandler maneja registro, login, refresco de tokens y perfil.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieSecure bool
}

// NewAuthHandler construye el handler de auth. cookieSecure marca la cookie como Secure (HTTPS).
func NewAuthHandler(uc *auth.AuthUseCase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return validation(c, "username, email y password son requeridos")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return validation(c, "password debe tener al menos 8 caracteres")
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// FarmManagerExists godoc
// @Summary      ¿Existe farm manager?
// @Description  Público. El formulario de registro solo ofrece el rol farm_manager si todavía no existe.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.FarmManagerExistsResponse
// @Router       /api/auth/farm-manager/exists [get]
func (h *AuthHandler) FarmManagerExists(c *fiber.Ctx) error {
	exists, err := h.uc.FarmManagerExists(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FarmManagerExistsResponse{Exists: exists})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el access token y deja el refresh token en una cookie HttpOnly.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return validation(c, "email y password son requeridos")
	}
	pair, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return writeError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken, h.uc.RefreshTTL())
	return c.JSON(dto.LoginResponse{AccessToken: pair.AccessToken, User: pair.User})
}

// Refresh godoc
// @Summary      Refrescar access token
// @Description  Lee la cookie refresh_token, emite un access token nuevo y rota la cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(RefreshCookie)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "refresh token requerido"})
	}
	pair, err := h.uc.Refresh(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.clearRefreshCookie(c)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "refresh token inválido o expirado"})
		}
		return writeError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken, h.uc.RefreshTTL())
	return c.JSON(dto.RefreshResponse{AccessToken: pair.AccessToken})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookie,
		Value:    value,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
