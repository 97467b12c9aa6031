package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/finance"
	"github.com/gestionpro/gestion-api/internal/domain/numbering"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// InvoiceUseCase crea facturas con numeración atómica y totales del motor
// financiero, y las consulta con su detalle.
type InvoiceUseCase struct {
	txRunner    TxRunner
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateInvoice crea una factura: valida que cliente y productos pertenezcan
// a la empresa, calcula los totales con el motor financiero, asigna el
// consecutivo atómicamente y persiste cabecera y líneas en una transacción.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
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
	date, err := parseDateOrToday(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	lines, err := resolveLines(ctx, uc.productRepo, companyID, in.Lines)
	if err != nil {
		return nil, err
	}

	inv, entityLines, err := uc.buildInvoice(companyID, in.ClientID, "", in.Notes, date, lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.CreditNoteRepository,
		_ repository.OrderRepository,
		numberingRepo repository.NumberingConfigRepository,
	) error {
		return numberAndPersistInvoice(ctx, invoiceRepo, numberingRepo, inv, entityLines, in.ManualSequence)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, client.Name, entityLines), nil
}

// ConvertOrderToInvoice crea el borrador de factura a partir de un pedido
// confirmado. El cambio de estado del pedido es compare-and-set dentro de la
// misma transacción, así que el pedido se convierte exactamente una vez.
func (uc *InvoiceUseCase) ConvertOrderToInvoice(ctx context.Context, companyID, orderID string, manualSequence *int64) (*dto.InvoiceResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if order.Status != entity.OrderStatusConfirmed {
		return nil, domain.ErrConflict
	}
	orderLines, err := uc.orderRepo.GetLinesByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(orderLines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]finance.Line, 0, len(orderLines))
	for _, l := range orderLines {
		lines = append(lines, finance.Line{
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Discount:    l.Discount,
		})
	}

	inv, entityLines, err := uc.buildInvoice(companyID, order.ClientID, orderID, order.Notes, time.Now(), lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.CreditNoteRepository,
		orderRepo repository.OrderRepository,
		numberingRepo repository.NumberingConfigRepository,
	) error {
		affected, err := orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusConfirmed, entity.OrderStatusInvoiced)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrConflict // otro proceso ya convirtió el pedido
		}
		return numberAndPersistInvoice(ctx, invoiceRepo, numberingRepo, inv, entityLines, manualSequence)
	})
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(ctx, inv.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(inv, clientName, entityLines), nil
}

// GetInvoice obtiene una factura con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(ctx, inv.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(inv, clientName, lines), nil
}

// ListInvoices lista las facturas de la empresa (sin detalle), paginado.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, "", nil))
	}
	return out, nil
}

// resolveLines valida y completa las líneas: las que referencian producto se
// prellenan con unidad, precio e impuesto del catálogo cuando vienen vacíos.
func resolveLines(ctx context.Context, productRepo repository.ProductRepository, companyID string, in []dto.LineRequest) ([]finance.Line, error) {
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
			product, err := productRepo.GetByID(ctx, req.ProductID)
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
			return nil, domain.ErrInvalidInput // línea libre sin descripción
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// buildInvoice arma cabecera y líneas con los montos del motor financiero.
// El número queda pendiente: lo asigna numberAndPersistInvoice en la tx.
func (uc *InvoiceUseCase) buildInvoice(companyID, clientID, orderID, notes string, date time.Time, lines []finance.Line) (*entity.Invoice, []*entity.InvoiceLine, error) {
	totals := finance.ComputeInvoiceTotals(lines)
	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  clientID,
		OrderID:   orderID,
		Status:    entity.InvoiceStatusIssued,
		Date:      date,
		Notes:     notes,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Tax:       totals.Tax,
		Total:     totals.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entityLines := make([]*entity.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		lt := finance.ComputeLineTotal(l)
		entityLines = append(entityLines, &entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
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
	return inv, entityLines, nil
}

// numberAndPersistInvoice asigna el número del documento y persiste cabecera
// y líneas, todo dentro de la transacción del caller.
//
// Con secuencia manual no se toca el contador: el valor viene del usuario y
// solo se acepta si la configuración lo permite; el índice único sobre
// (company_id, number) detecta colisiones. Sin secuencia manual, la
// asignación atómica incrementa (o reinicia, si cambió el período) el
// contador compartido.
func numberAndPersistInvoice(
	ctx context.Context,
	invoiceRepo repository.InvoiceRepository,
	numberingRepo repository.NumberingConfigRepository,
	inv *entity.Invoice,
	lines []*entity.InvoiceLine,
	manualSequence *int64,
) error {
	number, resolvedPrefix, sequence, err := allocateDocumentNumber(
		ctx, numberingRepo, inv.CompanyID, entity.DocumentTypeInvoice, inv.Date, manualSequence)
	if err != nil {
		return err
	}
	inv.Number = number
	inv.ResolvedPrefix = resolvedPrefix
	inv.Sequence = sequence
	if err := invoiceRepo.Create(ctx, inv); err != nil {
		return err
	}
	for _, line := range lines {
		if err := invoiceRepo.CreateLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// allocateDocumentNumber resuelve el número definitivo de un documento.
// La configuración almacenada se previsualiza primero: si reporta errores,
// la emisión falla antes de tocar el contador.
func allocateDocumentNumber(
	ctx context.Context,
	numberingRepo repository.NumberingConfigRepository,
	companyID, documentType string,
	date time.Time,
	manualSequence *int64,
) (number, resolvedPrefix string, sequence int64, err error) {
	stored, err := numberingRepo.GetByCompanyAndType(ctx, companyID, documentType)
	if err != nil {
		return "", "", 0, err
	}
	if stored == nil {
		// Primera emisión sin configuración guardada: se siembra el
		// registro con defaults para que exista el contador.
		stored = &entity.NumberingConfig{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			DocumentType: documentType,
			NextSequence: 1,
			PeriodKey:    numbering.ResetNever.PeriodKey(date),
		}
		if err := numberingRepo.Upsert(ctx, stored); err != nil {
			return "", "", 0, err
		}
	}
	cfg := stored.Engine()
	if check := numbering.Preview(cfg, nil); !check.OK() {
		return "", "", 0, domain.ErrNumberingInvalid
	}

	if manualSequence != nil {
		if !cfg.AllowManualOverride {
			return "", "", 0, domain.ErrManualNumberNotAllowed
		}
		if *manualSequence < 0 {
			return "", "", 0, domain.ErrInvalidInput
		}
		res := numbering.Preview(cfg, &numbering.Overrides{Date: &date, Sequence: manualSequence})
		return res.Value, res.ResolvedPrefix, res.Sequence, nil
	}

	reset := cfg.ResetFrequency
	if reset == "" {
		reset = numbering.ResetNever
	}
	alloc, err := numberingRepo.AllocateNext(ctx, companyID, documentType, reset.PeriodKey(date))
	if err != nil {
		return "", "", 0, err
	}
	seq := alloc.Sequence
	res := numbering.Preview(alloc.Config.Engine(), &numbering.Overrides{Date: &date, Sequence: &seq})
	return res.Value, res.ResolvedPrefix, res.Sequence, nil
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

func toInvoiceResponse(inv *entity.Invoice, clientName string, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		ClientID:       inv.ClientID,
		ClientName:     clientName,
		OrderID:        inv.OrderID,
		Number:         inv.Number,
		ResolvedPrefix: inv.ResolvedPrefix,
		Sequence:       inv.Sequence,
		Status:         inv.Status,
		Date:           inv.Date.Format("2006-01-02"),
		Notes:          inv.Notes,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		Tax:            inv.Tax,
		Total:          inv.Total,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.LineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Discount:    l.Discount,
			Taxable:     l.Taxable,
			TaxAmount:   l.TaxAmount,
			Total:       l.Total,
		})
	}
	return resp
}
