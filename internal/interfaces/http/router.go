package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/gestion-api/internal/application/auth"
	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/application/orders"
	"github.com/gestionpro/gestion-api/internal/application/usecase"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	ClientUC     *billing.ClientUseCase
	OrderUC      *orders.OrderUseCase
	InvoiceUC    *billing.InvoiceUseCase
	CreditNoteUC *billing.CreditNoteUseCase
	NumberingUC  *billing.NumberingUseCase
	PDFUC        *billing.PDFUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público: registro de tenant)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/companies/:id", companyHandler.GetByID)

	// Consola super-admin (transversal a tenants)
	admin := protected.Group("/admin", RequireRole(entity.RoleSuperAdmin))
	adminHandler := NewAdminHandler(deps.CompanyUC)
	admin.Get("/companies", adminHandler.ListCompanies)
	admin.Patch("/companies/:id/status", adminHandler.UpdateCompanyStatus)

	// Escrituras de catálogo y facturación: admin y contable.
	// Vendedor puede leer catálogo y crear/confirmar pedidos.
	canBill := RequireRole(entity.RoleAdmin, entity.RoleContable)
	canSell := RequireRole(entity.RoleAdmin, entity.RoleContable, entity.RoleVendedor)

	// Clients
	clients := protected.Group("/clients", canSell)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Suppliers
	suppliers := protected.Group("/suppliers", canBill)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", canBill, productHandler.Create)
	products.Get("/", canSell, productHandler.List)
	products.Get("/:id", canSell, productHandler.GetByID)
	products.Put("/:id", canBill, productHandler.Update)

	// Orders
	ordersGroup := protected.Group("/orders", canSell)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.InvoiceUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/confirm", orderHandler.Confirm)
	ordersGroup.Post("/:id/invoice", canBill, orderHandler.ConvertToInvoice)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", canBill, invoiceHandler.Create)
	invoices.Get("/", canSell, invoiceHandler.List)
	invoices.Get("/:id", canSell, invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", canSell, invoiceHandler.DownloadPDF)

	// Credit notes (se emiten contra una factura)
	creditNoteHandler := NewCreditNoteHandler(deps.CreditNoteUC)
	invoices.Post("/:id/credit-notes", canBill, creditNoteHandler.Create)
	invoices.Get("/:id/credit-notes", canSell, creditNoteHandler.ListByInvoice)
	protected.Get("/credit-notes/:id", canSell, creditNoteHandler.GetByID)

	// Numbering settings
	numbering := protected.Group("/numbering", canBill)
	numberingHandler := NewNumberingHandler(deps.NumberingUC)
	numbering.Get("/tokens", numberingHandler.Tokens)
	numbering.Get("/:document_type", numberingHandler.GetSettings)
	numbering.Put("/:document_type", numberingHandler.SaveSettings)
	numbering.Post("/:document_type/preview", numberingHandler.Preview)
}
