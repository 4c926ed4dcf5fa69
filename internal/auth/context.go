package auth

import (
	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localShopID = "shop_id"
	localLocale = "locale"
)

// Middleware pulls the opaque authenticated user id and shop id the
// identity layer injects as headers. The gateway has already verified
// the token; this service only needs the ids for scoping.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localUserID, c.Get("X-User-ID"))
		c.Locals(localShopID, c.Get("X-Shop-ID"))

		lang := c.Get("Accept-Language")
		if lang == "" {
			lang = "en"
		}
		c.Locals(localLocale, lang)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) string {
	if val, ok := c.Locals(localUserID).(string); ok {
		return val
	}
	return ""
}

func GetShopID(c *fiber.Ctx) string {
	if val, ok := c.Locals(localShopID).(string); ok {
		return val
	}
	return ""
}

func GetLocale(c *fiber.Ctx) string {
	if val, ok := c.Locals(localLocale).(string); ok && val != "" {
		return val
	}
	return "en"
}
