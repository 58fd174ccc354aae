package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

// AuthHandler ออกและยกเลิก session; token ส่งกลับทั้งใน body และ cookie
type AuthHandler struct {
	userService  services.UserService
	cookieSecure bool
}

func NewAuthHandler(userService services.UserService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "reason", err.Error())
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	logger.InfoContext(ctx, "Login successful", "user_id", resp.User.ID)
	return utils.SuccessResponse(c, resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.userService.Logout(ctx, user); err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SuccessResponse(c, dto.LogoutResponse{Message: "Logged out"})
}
