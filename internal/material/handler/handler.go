package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/internal/material"
	"github.com/tokotrack/catalog-service/internal/material/dto"
	"github.com/tokotrack/catalog-service/internal/server"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type MaterialHandler struct {
	uc     material.UseCase
	logger logger.ZapLogger
}

func NewMaterialHandler(uc material.UseCase, log logger.ZapLogger) *MaterialHandler {
	return &MaterialHandler{uc: uc, logger: log}
}

func (h *MaterialHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/materials", h.Create)
	r.Get("/materials", h.List)
	r.Get("/materials/:id", h.GetByID)
	r.Put("/materials/:id", h.Update)
	r.Delete("/materials/:id", h.Delete)

	r.Put("/materials/:id/cost", h.UpdateUnitCost)
	r.Post("/materials/:id/adjust-stock", h.AdjustStock)

	r.Get("/stock-movements", h.ListMovements)
}

func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	input := new(dto.CreateMaterialInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ShopID = auth.GetShopID(c)

	m, err := h.uc.CreateMaterial(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to create material", zap.String("name", input.Name), zap.Error(err))
		return server.Error(c, err)
	}
	return server.Created(c, m)
}

func (h *MaterialHandler) List(c *fiber.Ctx) error {
	filters := &dto.MaterialFilters{
		ShopID:      auth.GetShopID(c),
		LowStock:    c.QueryBool("low_stock", false),
		SearchQuery: c.Query("q"),
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("page_size", 20),
	}
	if c.Query("is_active") != "" {
		active := c.QueryBool("is_active")
		filters.IsActive = &active
	}

	materials, total, err := h.uc.ListMaterials(c.Context(), filters)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Paged(c, materials, total, filters.Page, filters.PageSize)
}

func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetMaterial(c.Context(), c.Params("id"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, m)
}

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	input := new(dto.UpdateMaterialInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	m, err := h.uc.UpdateMaterial(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, m)
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMaterial(c.Context(), c.Params("id"), auth.GetShopID(c)); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MaterialHandler) UpdateUnitCost(c *fiber.Ctx) error {
	input := new(dto.UpdateUnitCostInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	m, err := h.uc.UpdateUnitCost(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to update unit cost", zap.String("material_id", input.ID), zap.Error(err))
		return server.Error(c, err)
	}
	return server.OK(c, m)
}

func (h *MaterialHandler) AdjustStock(c *fiber.Ctx) error {
	input := new(dto.AdjustStockInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.MaterialID = c.Params("id")
	input.ShopID = auth.GetShopID(c)
	input.UserID = auth.GetUserID(c)

	m, err := h.uc.AdjustStock(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to adjust stock", zap.String("material_id", input.MaterialID), zap.Error(err))
		return server.Error(c, err)
	}
	return server.OK(c, m)
}

func (h *MaterialHandler) ListMovements(c *fiber.Ctx) error {
	filters := &dto.MovementFilters{
		ShopID:      auth.GetShopID(c),
		SubjectType: c.Query("subject_type"),
		SubjectID:   c.Query("subject_id"),
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("page_size", 20),
	}

	movements, total, err := h.uc.ListMovements(c.Context(), filters)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Paged(c, movements, total, filters.Page, filters.PageSize)
}
