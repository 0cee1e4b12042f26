package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/application/stock"
)

// StockItemHandler maneja las peticiones HTTP para StockItem (protegido).
type StockItemHandler struct {
	uc *stock.StockItemUseCase
}

// NewStockItemHandler construye el handler.
func NewStockItemHandler(uc *stock.StockItemUseCase) *StockItemHandler {
	return &StockItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         stock-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items [post]
func (h *StockItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [get]
func (h *StockItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar insumo (la cantidad no se toca aquí, solo vía movimientos)
// @Tags         stock-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del insumo"
// @Param        body  body  dto.UpdateStockItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [put]
func (h *StockItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar insumos
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        limit            query  int   false  "Límite"  default(20)
// @Param        offset           query  int   false  "Offset"  default(0)
// @Param        include_deleted  query  bool  false  "Incluir borrados"
// @Success      200  {object}  dto.StockItemListResponse
// @Router       /api/stock-items [get]
func (h *StockItemHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	if !checkStruct(c, &page) {
		return nil
	}
	out, err := h.uc.List(page, c.QueryBool("include_deleted"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// CanDelete godoc
// @Summary      Consultar si el insumo puede borrarse (guard de recetas activas)
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.CanDeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/can-delete [get]
func (h *StockItemHandler) CanDelete(c *fiber.Ctx) error {
	out, err := h.uc.CheckCanDelete(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar insumo (soft delete, rechazado si hay recetas activas)
// @Tags         stock-items
// @Security     Bearer
// @Param        id  path  string  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [delete]
func (h *StockItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar insumo borrado
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/restore [post]
func (h *StockItemHandler) Restore(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Restore(id); err != nil {
		return writeDomainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
