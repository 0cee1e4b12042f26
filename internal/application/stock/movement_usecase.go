package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
	domstock "github.com/julianrc/panaderia-api/internal/domain/stock"
)

// MovementUseCase registra movimientos del ledger de inventario de forma
// transaccional (RECEIVED, USED, ADJUSTED, DAMAGED, EXPIRED) con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback. Toda mutación de cantidad de un
// insumo pasa por aquí: el ledger es la fuente de verdad y la cantidad del
// insumo es una proyección.
type MovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	movRepo  repository.StockMovementRepository
	recorder MovementRecorder
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// WithRecorder conecta el contador de movimientos; nil lo deja apagado.
func (uc *MovementUseCase) WithRecorder(rec MovementRecorder) *MovementUseCase {
	uc.recorder = rec
	return uc
}

// MovementInput entrada para registrar un movimiento.
// Para RECEIVED/USED/DAMAGED/EXPIRED Quantity es positiva; para ADJUSTED es
// el delta con signo.
type MovementInput struct {
	StockItemID   string
	Type          string
	Quantity      decimal.Decimal
	Reason        string
	ReferenceType string
	ReferenceID   string
	UserID        string
}

// Receive registra una entrada de mercancía (cantidad > 0).
func (uc *MovementUseCase) Receive(ctx context.Context, stockItemID string, quantity decimal.Decimal, reason, userID string) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		StockItemID: stockItemID,
		Type:        entity.MovementTypeRECEIVED,
		Quantity:    quantity,
		Reason:      reason,
		UserID:      userID,
	})
}

// Consume registra un consumo (cantidad > 0), opcionalmente ligado al objeto
// de negocio que lo originó (ej. una orden).
func (uc *MovementUseCase) Consume(ctx context.Context, stockItemID string, quantity decimal.Decimal, referenceType, referenceID, userID string) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		StockItemID:   stockItemID,
		Type:          entity.MovementTypeUSED,
		Quantity:      quantity,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		UserID:        userID,
	})
}

// Adjust registra un ajuste manual con delta con signo (motivo obligatorio).
func (uc *MovementUseCase) Adjust(ctx context.Context, stockItemID string, quantity decimal.Decimal, reason, userID string) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		StockItemID: stockItemID,
		Type:        entity.MovementTypeADJUSTED,
		Quantity:    quantity,
		Reason:      reason,
		UserID:      userID,
	})
}

// RegisterLoss registra una pérdida por daño o vencimiento (cantidad > 0,
// motivo obligatorio). movementType debe ser DAMAGED o EXPIRED.
func (uc *MovementUseCase) RegisterLoss(ctx context.Context, stockItemID, movementType string, quantity decimal.Decimal, reason, userID string) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		StockItemID: stockItemID,
		Type:        movementType,
		Quantity:    quantity,
		Reason:      reason,
		UserID:      userID,
	})
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *MovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		StockItemID:   in.StockItemID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		UserID:        userID,
	})
}

// RegisterMovement valida las precondiciones del tipo, inicia una transacción,
// bloquea la fila del insumo (SELECT FOR UPDATE), inserta el movimiento
// inmutable y actualiza cantidad+estado del insumo; Commit o Rollback.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*dto.MovementResponse, error) {
	delta, err := deltaFor(input)
	if err != nil {
		return nil, err
	}

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
	) error {
		// Bloquea la fila del insumo para evitar lost updates entre
		// movimientos concurrentes sobre el mismo insumo.
		item, err := itemRepo.GetForUpdate(input.StockItemID)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}

		newQty := item.CurrentQuantity.Add(delta)
		if newQty.LessThan(decimal.Zero) {
			if input.Type == entity.MovementTypeADJUSTED {
				return domain.Validation("quantity", "el ajuste dejaría la cantidad en negativo")
			}
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			StockItemID:      item.ID,
			Type:             input.Type,
			Quantity:         delta,
			PreviousQuantity: item.CurrentQuantity,
			NewQuantity:      newQty,
			Reason:           strings.TrimSpace(input.Reason),
			ReferenceType:    input.ReferenceType,
			ReferenceID:      input.ReferenceID,
			CreatedBy:        input.UserID,
			CreatedAt:        now,
		}
		// Último guard antes de escribir: ningún movimiento parcial llega a la BD.
		if err := domstock.ValidateMovement(mov); err != nil {
			return err
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		status := domstock.ComputeStatus(newQty, item.ReorderThreshold)
		if err := itemRepo.UpdateQuantity(item.ID, newQty, status); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.MovementRegistered(created.Type)
	}
	return toMovementResponse(created), nil
}

// deltaFor valida las precondiciones por tipo y devuelve el delta con signo.
func deltaFor(input MovementInput) (decimal.Decimal, error) {
	if input.StockItemID == "" {
		return decimal.Zero, domain.Validation("stock_item_id", "el insumo es obligatorio")
	}
	switch input.Type {
	case entity.MovementTypeRECEIVED:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.Validation("quantity", "la cantidad recibida debe ser mayor que cero")
		}
		return input.Quantity, nil
	case entity.MovementTypeUSED:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.Validation("quantity", "la cantidad consumida debe ser mayor que cero")
		}
		return input.Quantity.Neg(), nil
	case entity.MovementTypeADJUSTED:
		if input.Quantity.IsZero() {
			return decimal.Zero, domain.Validation("quantity", "el ajuste no puede ser cero")
		}
		if strings.TrimSpace(input.Reason) == "" {
			return decimal.Zero, domain.Validation("reason", "el motivo es obligatorio para ajustes")
		}
		return input.Quantity, nil
	case entity.MovementTypeDAMAGED, entity.MovementTypeEXPIRED:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.Validation("quantity", "la cantidad perdida debe ser mayor que cero")
		}
		if strings.TrimSpace(input.Reason) == "" {
			return decimal.Zero, domain.Validation("reason", "el motivo es obligatorio para pérdidas")
		}
		return input.Quantity.Neg(), nil
	}
	return decimal.Zero, domain.Validation("type", "tipo de movimiento desconocido: "+input.Type)
}

// ListMovements lista el ledger con filtros tipados, más reciente primero.
func (uc *MovementUseCase) ListMovements(in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		StockItemID: in.StockItemID,
		Type:        in.Type,
		CreatedBy:   in.CreatedBy,
		From:        in.From,
		To:          in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// GetMovementByID obtiene un movimiento por ID.
func (uc *MovementUseCase) GetMovementByID(id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// MovementsForExport devuelve las entidades filtradas para el reporte XLSX.
func (uc *MovementUseCase) MovementsForExport(in dto.ListMovementsRequest) ([]*entity.StockMovement, error) {
	in.DefaultPage()
	return uc.movRepo.List(repository.MovementFilter{
		StockItemID: in.StockItemID,
		Type:        in.Type,
		CreatedBy:   in.CreatedBy,
		From:        in.From,
		To:          in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:               m.ID,
		StockItemID:      m.StockItemID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
