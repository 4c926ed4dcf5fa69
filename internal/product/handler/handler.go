package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/internal/product"
	"github.com/tokotrack/catalog-service/internal/product/dto"
	"github.com/tokotrack/catalog-service/internal/server"
	"github.com/tokotrack/catalog-service/pkg/apperror"
	"github.com/tokotrack/catalog-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/products", h.Create)
	r.Get("/products", h.List)
	r.Get("/products/:id", h.Get)
	r.Put("/products/:id", h.Update)
	r.Put("/products/:id/price", h.UpdatePrice)
	r.Delete("/products/:id", h.Delete)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	shopID := auth.GetShopID(c)
	if shopID == "" {
		return server.Error(c, apperror.Unauthorized("ErrMissingUser", "missing shop"))
	}

	input := new(dto.CreateProductInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ShopID = shopID

	p, err := h.uc.CreateProduct(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return server.Error(c, err)
	}
	return server.Created(c, p)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, p)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var isActive *bool
	if c.Query("is_active") != "" {
		b := c.QueryBool("is_active")
		isActive = &b
	}

	filters := &dto.ProductFilters{
		ShopID:      auth.GetShopID(c),
		CategoryID:  c.Query("category_id"),
		IsActive:    isActive,
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("page_size", 20),
	}

	products, count, err := h.uc.ListProducts(c.Context(), filters)
	if err != nil {
		return server.Error(c, err)
	}
	return server.Paged(c, products, count, filters.Page, filters.PageSize)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	input := new(dto.UpdateProductInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	p, err := h.uc.UpdateProduct(c.Context(), input)
	if err != nil {
		return server.Error(c, err)
	}
	return server.OK(c, p)
}

func (h *ProductHandler) UpdatePrice(c *fiber.Ctx) error {
	input := new(dto.UpdatePriceInput)
	if err := c.BodyParser(input); err != nil {
		return server.Error(c, apperror.Validation("ErrInvalidBody", "invalid request body"))
	}
	input.ID = c.Params("id")
	input.ShopID = auth.GetShopID(c)

	p, err := h.uc.UpdatePrice(c.Context(), input)
	if err != nil {
		h.logger.Error("failed to update price", zap.String("product_id", input.ID), zap.Error(err))
		return server.Error(c, err)
	}
	return server.OK(c, p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), c.Params("id"), auth.GetShopID(c)); err != nil {
		return server.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
