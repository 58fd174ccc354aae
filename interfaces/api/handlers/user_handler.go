package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Registration attempt", "email", req.Email, "username", req.Username)

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return respondError(c, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)
	return utils.CreatedResponse(c, dto.UserToUserResponse(user))
}

// CreateUser - admin สร้างบัญชีได้แม้ปิด registration และกำหนด role ได้
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	admin, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateUserRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	user, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "User creation failed", "email", req.Email, "error", err)
		return respondError(c, err)
	}

	logger.InfoContext(ctx, "User created",
		"user_id", user.ID,
		"created_by", admin.ID,
		"admin", user.IsAdmin(),
	)
	return utils.CreatedResponse(c, dto.UserToUserResponse(user))
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile not found", "user_id", user.ID)
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}
