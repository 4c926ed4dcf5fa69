package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/i18n"
)

// Error maps a usecase error to an HTTP response. Typed errors carry a
// stable code used both for localization and for clients that key on it.
func Error(c *fiber.Ctx, err error) error {
	if ae, ok := apperror.FromError(err); ok {
		status := fiber.StatusInternalServerError
		switch ae.Kind {
		case apperror.KindValidation:
			status = fiber.StatusBadRequest
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
		case apperror.KindConflict:
			status = fiber.StatusConflict
		case apperror.KindUnauthorized:
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).JSON(fiber.Map{
			"code":  ae.Code,
			"error": i18n.T(auth.GetLocale(c), ae.Code),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"data": data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

// Paged wraps list responses with the total row count for pagination.
func Paged(c *fiber.Ctx, data interface{}, total, page, pageSize int) error {
	return c.JSON(fiber.Map{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
