package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/application/invite"
)

// CookieConfig cookie de sesión.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler login, logout, perfil y contraseñas.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	invites *invite.InviteUseCase
	cookie  CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, invites *invite.InviteUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, invites: invites, cookie: cookie}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, out.Token)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Limpia la cookie de sesión; siempre responde 200.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.OKResponse{Success: true, Message: "Logout realizado com sucesso"})
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MeResponse{User: *out})
}

// SetPassword godoc
// @Summary      Definir contraseña con token de invitación
// @Description  Público. Activa al usuario INVITED y consume el token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPasswordRequest  true  "token, password, confirmPassword"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/set-password [post]
func (h *AuthHandler) SetPassword(c *fiber.Ctx) error {
	var in dto.SetPasswordRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.invites.SetPassword(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{Success: true, Message: "Senha criada com sucesso. Você já pode fazer login."})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword, confirmPassword"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUser(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{Success: true, Message: "Senha alterada com sucesso"})
}

// VerifyPassword godoc
// @Summary      Re-autenticación de administrador
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPasswordRequest  true  "password"
// @Success      200   {object}  dto.VerifyPasswordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.VerifyPasswordResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/verify-password [post]
func (h *AuthHandler) VerifyPassword(c *fiber.Ctx) error {
	var in dto.VerifyPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, badRequest("INVALID_BODY", "cuerpo inválido", nil))
	}
	if in.Password == "" {
		return respondError(c, badRequest("VALIDATION", "Senha obrigatória", nil))
	}
	user := GetUser(c)
	if !user.HasPassword() {
		return respondError(c, badRequest("NO_PASSWORD", "Usuário sem senha definida", nil))
	}
	ok, err := h.uc.VerifyPassword(c.UserContext(), user, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.VerifyPasswordResponse{Valid: false})
	}
	return c.JSON(dto.VerifyPasswordResponse{Valid: true})
}
