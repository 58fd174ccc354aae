package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/models"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

// Authenticator ตรวจ token แล้วคืน user; services.UserService implement อยู่แล้ว
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.UserContext, error)
}

// Protected ตรวจ token จาก Authorization header หรือ session cookie
// ก่อนเข้าถึง store ทุกครั้ง
func Protected(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token := utils.ExtractToken(c)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization token")
		}

		userCtx, err := auth.Authenticate(ctx, token)
		if err != nil {
			logger.WarnContext(ctx, "Token validation failed", "path", c.Path(), "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			case errors.Is(err, services.ErrSessionRevoked):
				return utils.UnauthorizedResponse(c, "Session has ended")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		utils.SetUserInContext(c, userCtx)
		c.SetUserContext(logger.ContextWithUserID(ctx, userCtx.ID.String()))

		return c.Next()
	}
}

// RequireRole middleware checks if user has specific role
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		if user.Role != role {
			return utils.ForbiddenResponse(c, "Insufficient permissions")
		}

		return c.Next()
	}
}

// AdminOnly middleware ensures only admin users can access
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}
