package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/internal/bom"
	"github.com/tokotrack/catalog-service/internal/bom/dto"
	"github.com/tokotrack/catalog-service/internal/server"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type BOMHandler struct {
	uc     bom.UseCase
	logger logger.ZapLogger
}

func NewBOMHandler(uc bom.UseCase, log logger.ZapLogger) *BOMHandler {
	return &BOMHandler{uc: uc, logger: log}
}

func (h *BOMHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/products/:productId/bom", h.AddItem)
	r.Get("/products/:productId/bom", h.ListItems)
	r.Put("/bom-items/:id", h.UpdateItem)
	r.Delete("/bom-items/:id", h.RemoveItem)

	r.Post("/variations/:variationId/bom", h.AddVariationEntry)
	r.Get("/variations/:variationId/bom", h.ListVariationEntries)
	r.Get("/variations/:variationId/bom/effective", h.EffectiveBOM)
	r.Put("/bom-variations/:id", h.UpdateVariationEntry)
	r.Delete("/bom-variations/:id", h.RemoveVariationEntry)

	r.Get("/products/:productId/cost-report", h.CostReport)
}

func (h *BOMHandler) AddItem(c *fiber.Ctx) error {
	input := new(dto.CreateBOMItemInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ProductID = c.Params("productId")
	input.ShopID = auth.GetShopID(c)

	item, err := h.uc.AddItem(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to add BOM item", zap.String("product_id", input.ProductID), zap.Error(err))
		return server.Error(c, err)
	}
	return server.Created(c, item)
}

func (h *BOMHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), c.Params("productId"), c.QueryBool("active_only", true))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, items)
}

func (h *BOMHandler) UpdateItem(c *fiber.Ctx) error {
	input := new(dto.UpdateBOMItemInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")

	item, err := h.uc.UpdateItem(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, item)
}

func (h *BOMHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.Context(), c.Params("id")); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BOMHandler) AddVariationEntry(c *fiber.Ctx) error {
	input := new(dto.CreateBOMVariationInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ProductVariationID = c.Params("variationId")
	input.ShopID = auth.GetShopID(c)

	entry, err := h.uc.AddVariationEntry(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Created(c, entry)
}

func (h *BOMHandler) ListVariationEntries(c *fiber.Ctx) error {
	entries, err := h.uc.ListVariationEntries(c.Context(), c.Params("variationId"), c.QueryBool("active_only", true))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, entries)
}

func (h *BOMHandler) EffectiveBOM(c *fiber.Ctx) error {
	lines, err := h.uc.EffectiveBOM(c.Context(), c.Params("variationId"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, lines)
}

func (h *BOMHandler) UpdateVariationEntry(c *fiber.Ctx) error {
	input := new(dto.UpdateBOMVariationInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")

	entry, err := h.uc.UpdateVariationEntry(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, entry)
}

func (h *BOMHandler) RemoveVariationEntry(c *fiber.Ctx) error {
	if err := h.uc.RemoveVariationEntry(c.Context(), c.Params("id")); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BOMHandler) CostReport(c *fiber.Ctx) error {
	report, err := h.uc.CostReport(c.Context(), c.Params("productId"), auth.GetShopID(c))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, report)
}
