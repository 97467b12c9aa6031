package billing_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los casos de uso de facturación. Replican el
// contrato observable de la capa postgres: no-encontrado devuelve (nil, nil),
// AllocateNext reinicia el contador cuando cambia la llave de período y el
// número de documento es único por empresa.
// ──────────────────────────────────────────────────────────────────────────────

type fakeNumberingRepo struct {
	mu      sync.Mutex
	configs map[string]*entity.NumberingConfig // companyID + "/" + documentType
}

func newFakeNumberingRepo() *fakeNumberingRepo {
	return &fakeNumberingRepo{configs: make(map[string]*entity.NumberingConfig)}
}

func numberingKey(companyID, documentType string) string {
	return companyID + "/" + documentType
}

func (r *fakeNumberingRepo) Upsert(_ context.Context, cfg *entity.NumberingConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := numberingKey(cfg.CompanyID, cfg.DocumentType)
	if stored, ok := r.configs[key]; ok {
		// Igual que el upsert SQL: las plantillas cambian, el contador no.
		stored.PrefixTemplate = cfg.PrefixTemplate
		stored.FormatTemplate = cfg.FormatTemplate
		stored.SequenceLength = cfg.SequenceLength
		stored.ResetFrequency = cfg.ResetFrequency
		stored.AllowManualOverride = cfg.AllowManualOverride
		return nil
	}
	cp := *cfg
	r.configs[key] = &cp
	return nil
}

func (r *fakeNumberingRepo) GetByCompanyAndType(_ context.Context, companyID, documentType string) (*entity.NumberingConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.configs[numberingKey(companyID, documentType)]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (r *fakeNumberingRepo) AllocateNext(_ context.Context, companyID, documentType, periodKey string) (*repository.AllocatedNumber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.configs[numberingKey(companyID, documentType)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	assigned := int64(1)
	if stored.PeriodKey == periodKey {
		assigned = stored.NextSequence
	}
	stored.NextSequence = assigned + 1
	stored.PeriodKey = periodKey
	cp := *stored
	return &repository.AllocatedNumber{Sequence: assigned, Config: cp}, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	lines    []*entity.InvoiceLine
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.invoices {
		if existing.CompanyID == invoice.CompanyID && existing.Number == invoice.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *invoice
	r.invoices[invoice.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(_ context.Context, line *entity.InvoiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *line
	r.lines = append(r.lines, &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: las pruebas de serialización
// simulan el lock con repos distintos dentro y fuera de la transacción.
func (r *fakeInvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InvoiceLine
	for _, l := range r.lines {
		if l.InvoiceID == invoiceID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCreditNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*entity.CreditNote
	lines []*entity.CreditNoteLine
}

func newFakeCreditNoteRepo() *fakeCreditNoteRepo {
	return &fakeCreditNoteRepo{notes: make(map[string]*entity.CreditNote)}
}

func (r *fakeCreditNoteRepo) Create(_ context.Context, note *entity.CreditNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *fakeCreditNoteRepo) CreateLine(_ context.Context, line *entity.CreditNoteLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *line
	r.lines = append(r.lines, &cp)
	return nil
}

func (r *fakeCreditNoteRepo) GetByID(_ context.Context, id string) (*entity.CreditNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *note
	return &cp, nil
}

func (r *fakeCreditNoteRepo) GetLinesByCreditNoteID(_ context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditNoteLine
	for _, l := range r.lines {
		if l.CreditNoteID == creditNoteID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCreditNoteRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.CreditNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditNote
	for _, note := range r.notes {
		if note.InvoiceID == invoiceID {
			cp := *note
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCreditNoteRepo) SumCreditedQuantities(_ context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[string]decimal.Decimal)
	for _, l := range r.lines {
		note, ok := r.notes[l.CreditNoteID]
		if !ok || note.InvoiceID != invoiceID {
			continue
		}
		sums[l.InvoiceLineID] = sums[l.InvoiceLineID].Add(l.Quantity)
	}
	return sums, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	lines  []*entity.OrderLine
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateLine(_ context.Context, line *entity.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *line
	r.lines = append(r.lines, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) GetLinesByOrderID(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OrderLine
	for _, l := range r.lines {
		if l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if order.CompanyID == companyID {
			cp := *order
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, expected, next string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != expected {
		return 0, nil
	}
	order.Status = next
	return 1, nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *client
	return &cp, nil
}

func (r *fakeClientRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, client := range r.clients {
		if client.CompanyID == companyID && client.TaxID == taxID {
			cp := *client
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Client
	for _, client := range r.clients {
		if client.CompanyID == companyID {
			cp := *client
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.CompanyID == companyID && product.SKU == sku {
			cp := *product
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, product := range r.products {
		if product.CompanyID == companyID {
			cp := *product
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *company
	return &cp, nil
}

func (r *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, company := range r.companies {
		cp := *company
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCompanyRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	company.Status = status
	return nil
}

// stubPDFGenerator devuelve bytes fijos; las pruebas del caso de uso PDF
// verifican la orquestación, no la composición del documento.
type stubPDFGenerator struct {
	output []byte
	err    error
}

func (g *stubPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	_ *entity.Invoice,
	_ *entity.Company,
	_ *entity.Client,
	_ []*entity.InvoiceLine,
) ([]byte, error) {
	return g.output, g.err
}

// fakeTxRunner entrega los mismos repos en memoria dentro y fuera de la
// "transacción": suficiente para probar la orquestación de los casos de uso.
type fakeTxRunner struct {
	invoices  *fakeInvoiceRepo
	notes     *fakeCreditNoteRepo
	orders    *fakeOrderRepo
	numbering *fakeNumberingRepo
}

var _ billing.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunBilling(
	ctx context.Context,
	fn func(repository.InvoiceRepository, repository.CreditNoteRepository, repository.OrderRepository, repository.NumberingConfigRepository) error,
) error {
	return fn(r.invoices, r.notes, r.orders, r.numbering)
}

// billingWorld agrupa todos los fakes y los casos de uso ya cableados.
type billingWorld struct {
	clients   *fakeClientRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	invoices  *fakeInvoiceRepo
	notes     *fakeCreditNoteRepo
	numbering *fakeNumberingRepo

	invoiceUC    *billing.InvoiceUseCase
	creditNoteUC *billing.CreditNoteUseCase
	numberingUC  *billing.NumberingUseCase
}

func newBillingWorld() *billingWorld {
	w := &billingWorld{
		clients:   newFakeClientRepo(),
		products:  newFakeProductRepo(),
		orders:    newFakeOrderRepo(),
		invoices:  newFakeInvoiceRepo(),
		notes:     newFakeCreditNoteRepo(),
		numbering: newFakeNumberingRepo(),
	}
	tx := &fakeTxRunner{
		invoices:  w.invoices,
		notes:     w.notes,
		orders:    w.orders,
		numbering: w.numbering,
	}
	w.invoiceUC = billing.NewInvoiceUseCase(tx, w.clients, w.products, w.orders, w.invoices)
	w.creditNoteUC = billing.NewCreditNoteUseCase(tx, w.invoices, w.notes)
	w.numberingUC = billing.NewNumberingUseCase(w.numbering)
	return w
}
