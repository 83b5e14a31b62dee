package response

import (
	stderrors "errors"

	"lirapay/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Domain renders a domain error with its code, optional details, and the
// HTTP status its code maps to. Non-domain errors become a plain 500.
func Domain(c *fiber.Ctx, err error) error {
	var derr *errors.DomainError
	if !stderrors.As(err, &derr) {
		return ServerError(c, "internal error")
	}

	body := fiber.Map{
		"error": derr.Message,
		"code":  derr.Code,
	}
	if len(derr.Details) > 0 {
		body["details"] = derr.Details
	}
	return c.Status(statusFor(derr.Code)).JSON(body)
}

func statusFor(code string) int {
	switch code {
	case "WALLET_NOT_FOUND":
		return fiber.StatusNotFound
	case "WALLET_BUSY":
		return fiber.StatusConflict
	case "WALLET_NOT_ACTIVE":
		return fiber.StatusForbidden
	case "INSUFFICIENT_BALANCE":
		return fiber.StatusUnprocessableEntity
	case "OPERATION_FAILED":
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
