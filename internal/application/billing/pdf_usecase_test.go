package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

func newPDFWorld(t *testing.T, gen *stubPDFGenerator) (*billing.PDFUseCase, *billingWorld, *fakeCompanyRepo) {
	t.Helper()
	w := newBillingWorld()
	companies := newFakeCompanyRepo()
	return billing.NewPDFUseCase(w.invoices, companies, w.clients, gen), w, companies
}

// ──────────────────────────────────────────────────────────────────────────────
// DownloadInvoicePDF
// ──────────────────────────────────────────────────────────────────────────────

// TestDownloadInvoicePDF_DescargaConNombre: con factura, empresa y cliente
// presentes, el caso de uso devuelve los bytes del generador y el nombre de
// archivo derivado del número de la factura.
func TestDownloadInvoicePDF_DescargaConNombre(t *testing.T) {
	gen := &stubPDFGenerator{output: []byte("%PDF-1.7 contenido")}
	uc, w, companies := newPDFWorld(t, gen)
	ctx := context.Background()

	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "empresa-1", Name: "Distribuciones El Roble"}))
	require.NoError(t, w.clients.Create(ctx, &entity.Client{ID: "cli-1", CompanyID: "empresa-1", Name: "Cliente Uno", TaxID: "900-1"}))
	invoiceID, _ := seedInvoiceWithLine(t, w)

	pdfBytes, filename, err := uc.DownloadInvoicePDF(ctx, "empresa-1", invoiceID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 contenido"), pdfBytes)
	assert.Equal(t, "factura_FV-0001.pdf", filename)
}

// TestDownloadInvoicePDF_EmpresaInexistente: si la empresa del token ya no
// existe, el error es no-encontrado del dominio, nunca un error envuelto
// sobre nada.
func TestDownloadInvoicePDF_EmpresaInexistente(t *testing.T) {
	uc, w, _ := newPDFWorld(t, &stubPDFGenerator{output: []byte("pdf")})
	ctx := context.Background()
	invoiceID, _ := seedInvoiceWithLine(t, w)

	_, _, err := uc.DownloadInvoicePDF(ctx, "empresa-1", invoiceID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, err.Error(), "%!w", "el error no debe envolver un nil")
}

// TestDownloadInvoicePDF_ClienteInexistente: cliente borrado después de emitir
// la factura también es no-encontrado del dominio.
func TestDownloadInvoicePDF_ClienteInexistente(t *testing.T) {
	uc, w, companies := newPDFWorld(t, &stubPDFGenerator{output: []byte("pdf")})
	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "empresa-1", Name: "Distribuciones El Roble"}))
	invoiceID, _ := seedInvoiceWithLine(t, w)

	_, _, err := uc.DownloadInvoicePDF(ctx, "empresa-1", invoiceID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDownloadInvoicePDF_FacturaDeOtraEmpresa: la factura de otro tenant es
// acceso denegado, aunque exista.
func TestDownloadInvoicePDF_FacturaDeOtraEmpresa(t *testing.T) {
	uc, w, companies := newPDFWorld(t, &stubPDFGenerator{output: []byte("pdf")})
	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "empresa-2", Name: "Otra"}))
	invoiceID, _ := seedInvoiceWithLine(t, w)

	_, _, err := uc.DownloadInvoicePDF(ctx, "empresa-2", invoiceID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

// TestDownloadInvoicePDF_FacturaAnulada: una factura anulada no se descarga.
func TestDownloadInvoicePDF_FacturaAnulada(t *testing.T) {
	uc, w, companies := newPDFWorld(t, &stubPDFGenerator{output: []byte("pdf")})
	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "empresa-1", Name: "Distribuciones El Roble"}))
	require.NoError(t, w.invoices.Create(ctx, &entity.Invoice{
		ID:        "fac-anulada",
		CompanyID: "empresa-1",
		ClientID:  "cli-1",
		Number:    "FV-0009",
		Status:    entity.InvoiceStatusVoided,
		Date:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}))

	_, _, err := uc.DownloadInvoicePDF(ctx, "empresa-1", "fac-anulada")
	require.ErrorIs(t, err, domain.ErrConflict)
}

// TestDownloadInvoicePDF_GeneradorFalla: un fallo del generador se propaga
// envuelto con contexto.
func TestDownloadInvoicePDF_GeneradorFalla(t *testing.T) {
	genErr := errors.New("sin fuente")
	uc, w, companies := newPDFWorld(t, &stubPDFGenerator{err: genErr})
	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "empresa-1", Name: "Distribuciones El Roble"}))
	require.NoError(t, w.clients.Create(ctx, &entity.Client{ID: "cli-1", CompanyID: "empresa-1", Name: "Cliente Uno", TaxID: "900-1"}))
	invoiceID, _ := seedInvoiceWithLine(t, w)

	_, _, err := uc.DownloadInvoicePDF(ctx, "empresa-1", invoiceID)
	require.ErrorIs(t, err, genErr)
}
