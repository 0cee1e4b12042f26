package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/julianrc/panaderia-api/internal/application/catalog"
	"github.com/julianrc/panaderia-api/internal/application/dto"
)

// BrandHandler maneja marcas y su asociación con insumos (protegido).
type BrandHandler struct {
	uc *catalog.CatalogUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *catalog.CatalogUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// Create godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrandRequest  true  "Datos de la marca"
// @Success      201   {object}  dto.BrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateBrand(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener marca por ID
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *BrandHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetBrandByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la marca"
// @Param        body  body  dto.UpdateBrandRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BrandResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBrandRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateBrand(c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar marcas
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        limit            query  int   false  "Límite"  default(20)
// @Param        offset           query  int   false  "Offset"  default(0)
// @Param        include_deleted  query  bool  false  "Incluir borradas"
// @Success      200  {object}  dto.BrandListResponse
// @Router       /api/brands [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	if !checkStruct(c, &page) {
		return nil
	}
	out, err := h.uc.ListBrands(page, c.QueryBool("include_deleted"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar marca (soft delete)
// @Tags         brands
// @Security     Bearer
// @Param        id  path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDeleteBrand(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar marca borrada
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id}/restore [post]
func (h *BrandHandler) Restore(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.RestoreBrand(id); err != nil {
		return writeDomainError(c, err)
	}
	out, err := h.uc.GetBrandByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// AddToStockItem godoc
// @Summary      Asociar marca a insumo con precios
// @Tags         stock-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del insumo"
// @Param        body  body  dto.AddBrandToStockItemRequest  true  "Marca y precios"
// @Success      201   {object}  dto.StockItemBrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/brands [post]
func (h *BrandHandler) AddToStockItem(c *fiber.Ctx) error {
	var in dto.AddBrandToStockItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AddBrandToStockItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListForStockItem godoc
// @Summary      Listar marcas de un insumo (preferida primero)
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {array}  dto.StockItemBrandResponse
// @Router       /api/stock-items/{id}/brands [get]
func (h *BrandHandler) ListForStockItem(c *fiber.Ctx) error {
	out, err := h.uc.ListBrandsForStockItem(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// SetPreferred godoc
// @Summary      Marcar la marca preferida del insumo (exclusiva)
// @Tags         stock-items
// @Security     Bearer
// @Param        id       path  string  true  "ID del insumo"
// @Param        brandId  path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/brands/{brandId}/preferred [put]
func (h *BrandHandler) SetPreferred(c *fiber.Ctx) error {
	if err := h.uc.SetPreferredBrand(c.Context(), c.Params("id"), c.Params("brandId")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFromStockItem godoc
// @Summary      Quitar marca de un insumo (soft delete de la asociación)
// @Tags         stock-items
// @Security     Bearer
// @Param        id       path  string  true  "ID del insumo"
// @Param        brandId  path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/brands/{brandId} [delete]
func (h *BrandHandler) RemoveFromStockItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveBrandFromStockItem(c.Params("id"), c.Params("brandId")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
