package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/application/usecase"
)

// AdminHandler consola super-admin: administración transversal de tenants.
// Las rutas que lo usan van detrás de RequireRole(superadmin).
type AdminHandler struct {
	companyUC *usecase.CompanyUseCase
}

// NewAdminHandler construye el handler de la consola.
func NewAdminHandler(companyUC *usecase.CompanyUseCase) *AdminHandler {
	return &AdminHandler{companyUC: companyUC}
}

// ListCompanies godoc
// @Summary      Listar empresas (superadmin)
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/admin/companies [get]
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	companies, err := h.companyUC.ListCompanies(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(companies)
}

// UpdateCompanyStatus godoc
// @Summary      Cambiar estado de una empresa (superadmin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de empresa"
// @Param        body  body  dto.UpdateCompanyStatusRequest  true  "active|suspended|inactive"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{id}/status [patch]
func (h *AdminHandler) UpdateCompanyStatus(c *fiber.Ctx) error {
	var in dto.UpdateCompanyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	company, err := h.companyUC.UpdateCompanyStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}
