package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/internal/server"
	"github.com/tokotrack/catalog-service/internal/variation"
	"github.com/tokotrack/catalog-service/internal/variation/dto"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type VariationHandler struct {
	uc     variation.UseCase
	logger logger.ZapLogger
}

func NewVariationHandler(uc variation.UseCase, log logger.ZapLogger) *VariationHandler {
	return &VariationHandler{uc: uc, logger: log}
}

func (h *VariationHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/variation-types", h.CreateType)
	r.Get("/variation-types", h.ListTypes)
	r.Put("/variation-types/:id", h.UpdateType)
	r.Post("/variation-types/:id/options", h.CreateOption)
	r.Get("/variation-types/:id/options", h.ListOptions)

	r.Post("/products/:productId/variations", h.Compose)
	r.Get("/products/:productId/variations", h.ListByProduct)
	r.Get("/variations/:id", h.Get)
	r.Put("/variations/:id", h.Update)
	r.Delete("/variations/:id", h.Delete)
}

func (h *VariationHandler) CreateType(c *fiber.Ctx) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return server.Error(c, apperror.Unauthorized("ErrMissingUser", "missing authenticated user"))
	}

	input := new(dto.CreateVariationTypeInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.OwnerID = userID

	t, err := h.uc.CreateVariationType(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Created(c, t)
}

func (h *VariationHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.uc.ListVariationTypes(c.Context(), auth.GetUserID(c))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, types)
}

func (h *VariationHandler) UpdateType(c *fiber.Ctx) error {
	input := new(dto.UpdateVariationTypeInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.OwnerID = auth.GetUserID(c)

	t, err := h.uc.UpdateVariationType(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, t)
}

func (h *VariationHandler) CreateOption(c *fiber.Ctx) error {
	input := new(dto.CreateVariationOptionInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.VariationTypeID = c.Params("id")
	input.OwnerID = auth.GetUserID(c)

	o, err := h.uc.CreateVariationOption(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Created(c, o)
}

func (h *VariationHandler) ListOptions(c *fiber.Ctx) error {
	options, err := h.uc.ListVariationOptions(c.Context(), c.Params("id"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, options)
}

func (h *VariationHandler) Compose(c *fiber.Ctx) error {
	shopID := auth.GetShopID(c)
	if shopID == "" {
		return server.Error(c, apperror.Unauthorized("ErrMissingUser", "missing shop"))
	}

	input := new(dto.ComposeVariationInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ProductID = c.Params("productId")
	input.ShopID = shopID

	v, err := h.uc.ComposeVariation(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to compose variation",
			zap.String("product_id", input.ProductID), zap.Error(err))
		return server.Error(c, err)
	}
	return server.Created(c, v)
}

func (h *VariationHandler) ListByProduct(c *fiber.Ctx) error {
	variations, err := h.uc.ListVariations(c.Context(), c.Params("productId"), c.QueryBool("active_only", false))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, variations)
}

func (h *VariationHandler) Get(c *fiber.Ctx) error {
	v, err := h.uc.GetVariation(c.Context(), c.Params("id"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, v)
}

func (h *VariationHandler) Update(c *fiber.Ctx) error {
	input := new(dto.UpdateVariationInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	v, err := h.uc.UpdateVariation(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, v)
}

func (h *VariationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteVariation(c.Context(), c.Params("id")); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
