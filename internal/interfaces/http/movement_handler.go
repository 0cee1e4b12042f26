package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/application/report"
	"github.com/julianrc/panaderia-api/internal/application/stock"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// MovementHandler maneja el ledger de movimientos de inventario (protegido).
type MovementHandler struct {
	uc       *stock.MovementUseCase
	itemRepo repository.StockItemRepository
}

// NewMovementHandler construye el handler. itemRepo se usa para resolver
// nombres de insumo en el export XLSX.
func NewMovementHandler(uc *stock.MovementUseCase, itemRepo repository.StockItemRepository) *MovementHandler {
	return &MovementHandler{uc: uc, itemRepo: itemRepo}
}

// Register godoc
// @Summary      Registrar movimiento de inventario (RECEIVED, USED, ADJUSTED, DAMAGED, EXPIRED)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        stock_item_id  query  string  false  "Filtro por insumo"
// @Param        type           query  string  false  "Filtro por tipo"
// @Param        created_by     query  string  false  "Filtro por usuario"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in, ok := parseListMovements(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListMovements(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetMovementByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar movimientos filtrados a XLSX
// @Tags         movements
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        stock_item_id  query  string  false  "Filtro por insumo"
// @Param        type           query  string  false  "Filtro por tipo"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Success      200
// @Router       /api/stock/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	in, ok := parseListMovements(c)
	if !ok {
		return nil
	}
	// Límite amplio para el reporte; el filtro de fechas acota el volumen.
	if c.QueryInt("limit") <= 0 {
		in.Limit = 10000
	}
	movements, err := h.uc.MovementsForExport(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	data, err := report.MovementsXLSX(movements, report.NewNameResolver(h.itemRepo))
	if err != nil {
		return writeDomainError(c, err)
	}
	filename := "movimientos_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// parseListMovements arma el filtro desde query params; from/to en RFC3339.
func parseListMovements(c *fiber.Ctx) (dto.ListMovementsRequest, bool) {
	in := dto.ListMovementsRequest{
		StockItemID: c.Query("stock_item_id"),
		Type:        c.Query("type"),
		CreatedBy:   c.Query("created_by"),
	}
	in.Limit = c.QueryInt("limit")
	in.Offset = c.QueryInt("offset")
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339", Field: "from"})
			return in, false
		}
		in.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339", Field: "to"})
			return in, false
		}
		in.To = &t
	}
	if !checkStruct(c, &in) {
		return in, false
	}
	return in, true
}
