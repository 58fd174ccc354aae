package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rental-crm/domain/dto"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

var errInvalidID = errors.New("id must be a positive integer")

// respondError แปลง error ของ service เป็น HTTP response
func respondError(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()

	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, errInvalidID):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrSessionRevoked):
		return utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrUserExists):
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrRegistrationClosed):
		return utils.ForbiddenResponse(c, err.Error())
	}

	logger.ErrorContext(ctx, "Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return utils.InternalServerErrorResponse(c, err.Error())
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 63)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// pathOrQueryID อ่าน id จาก /:id ก่อน แล้วค่อย ?id=; ok=false ถ้าไม่มีทั้งคู่
func pathOrQueryID(c *fiber.Ctx) (id uint, ok bool, err error) {
	raw := c.Params("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		return 0, false, nil
	}
	id, err = parseID(raw)
	return id, true, err
}

// deleteID อ่าน id ของ DELETE: path, query หรือ body {id}
func deleteID(c *fiber.Ctx) (uint, error) {
	id, ok, err := pathOrQueryID(c)
	if ok || err != nil {
		return id, err
	}

	var req dto.IDRequest
	if len(c.Body()) == 0 {
		return 0, errInvalidID
	}
	if err := c.BodyParser(&req); err != nil {
		return 0, errInvalidID
	}
	if !storableID(req.ID) {
		return 0, errInvalidID
	}
	return req.ID, nil
}

// bodyID คืน id จาก path ถ้ามี ไม่งั้นใช้ id ใน body
func bodyID(c *fiber.Ctx, fromBody uint) (uint, error) {
	if raw := c.Params("id"); raw != "" {
		return parseID(raw)
	}
	if !storableID(fromBody) {
		return 0, errInvalidID
	}
	return fromBody, nil
}

// storableID: id ต้องเป็นบวกและไม่เกิน bigint ของ postgres
func storableID(id uint) bool {
	return id > 0 && uint64(id) <= math.MaxInt64
}

func currentUser(c *fiber.Ctx) (*utils.UserContext, bool) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Unauthorized access attempt", "path", c.Path())
		return nil, false
	}
	return user, true
}

// parseBody อ่านและ validate body; ok=false แปลว่าเขียน 400 ไปแล้ว ให้ return err ต่อ
func parseBody(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		logger.WarnContext(c.UserContext(), "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(out); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(c.UserContext(), "Validation failed", "errors", errs)
		return false, utils.ValidationErrorResponse(c, errs)
	}
	return true, nil
}
