// Package orders implementa los casos de uso de pedidos de venta: creación,
// consulta y confirmación. La conversión de pedido a factura vive en el
// paquete billing porque necesita la transacción de numeración.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/finance"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	txRunner    billing.TxRunner
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner billing.TxRunner,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// CreateOrder crea un pedido en borrador con sus líneas. Los totales salen
// siempre del motor financiero, nunca del cliente.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	date := time.Now()
	if in.Date != "" {
		date, err = time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	lines, err := uc.resolveLines(ctx, companyID, in.Lines)
	if err != nil {
		return nil, err
	}
	totals := finance.ComputeInvoiceTotals(lines)

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  in.ClientID,
		Status:    entity.OrderStatusDraft,
		Date:      date,
		Notes:     in.Notes,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Tax:       totals.Tax,
		Total:     totals.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entityLines := make([]*entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		entityLines = append(entityLines, &entity.OrderLine{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Discount:    l.Discount,
		})
	}

	// Cabecera y líneas confirman o revierten juntas: sin transacción, un
	// fallo al insertar una línea dejaría un pedido sin detalle.
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.InvoiceRepository,
		_ repository.CreditNoteRepository,
		orderRepo repository.OrderRepository,
		_ repository.NumberingConfigRepository,
	) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, line := range entityLines {
			if err := orderRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, entityLines), nil
}

// GetOrder obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.orderRepo.GetLinesByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, lines), nil
}

// ListOrders lista los pedidos de la empresa (sin detalle), paginado.
func (uc *OrderUseCase) ListOrders(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

// ConfirmOrder pasa un pedido de draft a confirmed (compare-and-set).
func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	affected, err := uc.orderRepo.UpdateStatus(ctx, id, entity.OrderStatusDraft, entity.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrConflict
	}
	order.Status = entity.OrderStatusConfirmed
	return toOrderResponse(order, nil), nil
}

// resolveLines valida y completa las líneas contra el catálogo, igual que en
// la creación de facturas.
func (uc *OrderUseCase) resolveLines(ctx context.Context, companyID string, in []dto.LineRequest) ([]finance.Line, error) {
	lines := make([]finance.Line, 0, len(in))
	for i := range in {
		req := in[i]
		if req.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		line := finance.Line{
			ProductID:   req.ProductID,
			Description: req.Description,
			Quantity:    req.Quantity,
			Unit:        req.Unit,
			UnitPrice:   req.UnitPrice,
			TaxRate:     req.TaxRate,
			Discount:    req.Discount,
		}
		if req.ProductID != "" {
			product, err := uc.productRepo.GetByID(ctx, req.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			if line.Description == "" {
				line.Description = product.Name
			}
			if line.Unit == "" {
				line.Unit = product.Unit
			}
			if line.UnitPrice.IsZero() {
				line.UnitPrice = product.Price
			}
			if line.TaxRate.IsZero() {
				line.TaxRate = product.TaxRate
			}
		} else if line.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderLine) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		ClientID:  o.ClientID,
		Status:    o.Status,
		Date:      o.Date.Format("2006-01-02"),
		Notes:     o.Notes,
		Subtotal:  o.Subtotal,
		Discount:  o.Discount,
		Tax:       o.Tax,
		Total:     o.Total,
	}
	for _, l := range lines {
		lt := finance.ComputeLineTotal(finance.Line{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			Discount:  l.Discount,
		})
		resp.Lines = append(resp.Lines, dto.LineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Discount:    l.Discount,
			Taxable:     lt.Taxable,
			TaxAmount:   lt.TaxAmount,
			Total:       lt.Total,
		})
	}
	return resp
}
