package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// ClientUseCase CRUD de clientes de la empresa.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient crea un cliente; el tax_id es único por empresa.
func (uc *ClientUseCase) CreateClient(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.clientRepo.GetByCompanyAndTaxID(ctx, companyID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient obtiene un cliente de la empresa.
func (uc *ClientUseCase) GetClient(ctx context.Context, companyID, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toClientResponse(client), nil
}

// ListClients lista los clientes de la empresa, paginado.
func (uc *ClientUseCase) ListClients(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// UpdateClient actualiza los datos de contacto de un cliente.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, companyID, id string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.TaxID != "" {
		client.TaxID = in.TaxID
	}
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}
