package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/internal/category"
	"github.com/tokotrack/catalog-service/internal/category/dto"
	"github.com/tokotrack/catalog-service/internal/server"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/categories", h.Create)
	r.Get("/categories", h.List)
	r.Get("/categories/:id", h.Get)
	r.Put("/categories/:id", h.Update)
	r.Delete("/categories/:id", h.Delete)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	shopID := auth.GetShopID(c)
	if shopID == "" {
		return server.Error(c, apperror.Unauthorized("ErrMissingUser", "missing shop"))
	}

	input := new(dto.CreateCategoryInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ShopID = shopID

	cat, err := h.uc.CreateCategory(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		return server.Error(c, err)
	}
	return server.Created(c, cat)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.uc.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, cat)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.uc.ListCategories(c.Context(), auth.GetShopID(c), c.QueryBool("active_only", false))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, cats)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	input := new(dto.UpdateCategoryInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	cat, err := h.uc.UpdateCategory(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id"), auth.GetShopID(c)); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
