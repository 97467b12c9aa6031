package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/numbering"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// NumberingUseCase administra la configuración de numeración por empresa y
// tipo de documento: pantalla de ajustes, previsualización en vivo y ayuda
// de tokens. El guardado se bloquea mientras la previsualización reporte
// errores; las advertencias se devuelven pero nunca bloquean.
type NumberingUseCase struct {
	numberingRepo repository.NumberingConfigRepository
}

// NewNumberingUseCase construye el caso de uso.
func NewNumberingUseCase(numberingRepo repository.NumberingConfigRepository) *NumberingUseCase {
	return &NumberingUseCase{numberingRepo: numberingRepo}
}

// GetSettings devuelve la configuración vigente del tipo de documento. Si la
// empresa nunca guardó una, responde los defaults del motor (sin persistir).
func (uc *NumberingUseCase) GetSettings(ctx context.Context, companyID, documentType string) (*dto.NumberingSettingsResponse, error) {
	if !entity.IsAllowedDocumentType(documentType) {
		return nil, domain.ErrInvalidInput
	}
	stored, err := uc.numberingRepo.GetByCompanyAndType(ctx, companyID, documentType)
	if err != nil {
		return nil, err
	}
	cfg := numbering.Config{}
	nextSequence := int64(1)
	if stored != nil {
		cfg = stored.Engine()
		nextSequence = stored.NextSequence
	}
	return uc.toSettingsResponse(documentType, cfg, nextSequence), nil
}

// SaveSettings valida la configuración en borrador previsualizándola y la
// persiste solo si no hay errores. El contador vigente no se toca: cambiar
// la plantilla nunca reinicia la secuencia.
func (uc *NumberingUseCase) SaveSettings(ctx context.Context, companyID, documentType string, in dto.NumberingSettingsRequest) (*dto.NumberingSettingsResponse, error) {
	if !entity.IsAllowedDocumentType(documentType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ResetFrequency != "" && !numbering.ResetFrequency(in.ResetFrequency).Valid() {
		return nil, domain.ErrInvalidInput
	}
	cfg := numbering.Config{
		PrefixTemplate:      in.PrefixTemplate,
		FormatTemplate:      in.FormatTemplate,
		SequenceLength:      in.SequenceLength,
		ResetFrequency:      numbering.ResetFrequency(in.ResetFrequency),
		AllowManualOverride: in.AllowManualOverride,
	}
	res := numbering.Preview(cfg, nil)
	if !res.OK() {
		return nil, domain.ErrNumberingInvalid
	}

	stored, err := uc.numberingRepo.GetByCompanyAndType(ctx, companyID, documentType)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	next := int64(1)
	record := &entity.NumberingConfig{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		DocumentType:        documentType,
		PrefixTemplate:      in.PrefixTemplate,
		FormatTemplate:      in.FormatTemplate,
		SequenceLength:      in.SequenceLength,
		ResetFrequency:      cfg.ResetFrequency,
		NextSequence:        next,
		AllowManualOverride: in.AllowManualOverride,
		PeriodKey:           cfg.ResetFrequency.PeriodKey(now),
	}
	if stored != nil {
		record.ID = stored.ID
		record.NextSequence = stored.NextSequence
		record.PeriodKey = stored.PeriodKey
		next = stored.NextSequence
	}
	if err := uc.numberingRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	cfg.NextSequence = next
	return uc.toSettingsResponse(documentType, cfg, next), nil
}

// Preview previsualiza una configuración en borrador sin persistir nada.
// El resultado se devuelve completo, errores y advertencias incluidos.
func (uc *NumberingUseCase) Preview(ctx context.Context, companyID, documentType string, in dto.NumberingPreviewRequest) (*dto.PreviewResponse, error) {
	if !entity.IsAllowedDocumentType(documentType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ResetFrequency != "" && !numbering.ResetFrequency(in.ResetFrequency).Valid() {
		return nil, domain.ErrInvalidInput
	}
	cfg := numbering.Config{
		PrefixTemplate:      in.PrefixTemplate,
		FormatTemplate:      in.FormatTemplate,
		SequenceLength:      in.SequenceLength,
		ResetFrequency:      numbering.ResetFrequency(in.ResetFrequency),
		AllowManualOverride: in.AllowManualOverride,
	}
	// El contador por defecto para la vista es el próximo consecutivo
	// almacenado; los overrides explícitos del request tienen prioridad.
	stored, err := uc.numberingRepo.GetByCompanyAndType(ctx, companyID, documentType)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		cfg.NextSequence = stored.NextSequence
	}
	var ov numbering.Overrides
	if in.Date != "" {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ov.Date = &date
	}
	ov.Sequence = in.Sequence
	res := numbering.Preview(cfg, &ov)
	out := toPreviewResponse(res)
	return &out, nil
}

// Tokens devuelve el vocabulario cerrado de tokens para la ayuda de la UI.
func (uc *NumberingUseCase) Tokens() []numbering.TokenHelp {
	return numbering.Tokens()
}

func (uc *NumberingUseCase) toSettingsResponse(documentType string, cfg numbering.Config, nextSequence int64) *dto.NumberingSettingsResponse {
	view := cfg
	view.NextSequence = nextSequence
	res := numbering.Preview(view, nil)

	// La respuesta muestra los valores efectivos (defaults aplicados), no
	// los campos crudos en cero.
	prefixTpl := cfg.PrefixTemplate
	if prefixTpl == "" {
		prefixTpl = numbering.DefaultPrefixTemplate
	}
	formatTpl := cfg.FormatTemplate
	if formatTpl == "" {
		formatTpl = numbering.DefaultFormatTemplate
	}
	length := cfg.SequenceLength
	if length == 0 {
		length = numbering.DefaultSequenceLength
	}
	reset := cfg.ResetFrequency
	if reset == "" {
		reset = numbering.ResetNever
	}
	return &dto.NumberingSettingsResponse{
		DocumentType:        documentType,
		PrefixTemplate:      prefixTpl,
		FormatTemplate:      formatTpl,
		SequenceLength:      length,
		ResetFrequency:      string(reset),
		ResetDescription:    numbering.DescribeResetFrequency(reset),
		NextSequence:        nextSequence,
		AllowManualOverride: cfg.AllowManualOverride,
		Preview:             toPreviewResponse(res),
	}
}

func toPreviewResponse(res numbering.PreviewResult) dto.PreviewResponse {
	return dto.PreviewResponse{
		Value:          res.Value,
		ResolvedPrefix: res.ResolvedPrefix,
		Sequence:       res.Sequence,
		Errors:         res.Errors,
		Warnings:       res.Warnings,
	}
}
