package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/numbering"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

var _ repository.NumberingConfigRepository = (*NumberingConfigRepo)(nil)

// NumberingConfigRepo implementación de NumberingConfigRepository.
type NumberingConfigRepo struct {
	q Querier
}

// NewNumberingConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNumberingConfigRepository(q Querier) *NumberingConfigRepo {
	return &NumberingConfigRepo{q: q}
}

// Upsert inserta o reemplaza la configuración de numeración de la empresa
// para un tipo de documento. Clave natural: (company_id, document_type).
// El contador y el período vigentes NO se tocan en el upsert: cambiar la
// plantilla no reinicia la secuencia.
func (r *NumberingConfigRepo) Upsert(ctx context.Context, cfg *entity.NumberingConfig) error {
	const q = `
		INSERT INTO numbering_configs (id, company_id, document_type,
			prefix_template, format_template, sequence_length, reset_frequency,
			next_sequence, allow_manual_override, period_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (company_id, document_type) DO UPDATE SET
			prefix_template = EXCLUDED.prefix_template,
			format_template = EXCLUDED.format_template,
			sequence_length = EXCLUDED.sequence_length,
			reset_frequency = EXCLUDED.reset_frequency,
			allow_manual_override = EXCLUDED.allow_manual_override,
			updated_at = now()`
	_, err := r.q.Exec(ctx, q,
		cfg.ID, cfg.CompanyID, cfg.DocumentType,
		cfg.PrefixTemplate, cfg.FormatTemplate, cfg.SequenceLength,
		string(cfg.ResetFrequency), cfg.NextSequence, cfg.AllowManualOverride,
		cfg.PeriodKey,
	)
	if err != nil {
		return fmt.Errorf("upsert numbering config: %w", err)
	}
	return nil
}

// GetByCompanyAndType obtiene la configuración vigente; nil si la empresa
// nunca la guardó (el motor aplica los defaults).
func (r *NumberingConfigRepo) GetByCompanyAndType(ctx context.Context, companyID, documentType string) (*entity.NumberingConfig, error) {
	cfg, err := scanNumberingConfig(r.q.QueryRow(ctx,
		selectNumberingConfig+` WHERE company_id = $1 AND document_type = $2`,
		companyID, documentType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get numbering config: %w", err)
	}
	return cfg, nil
}

// AllocateNext asigna el siguiente consecutivo en un solo UPDATE atómico.
// Si periodKey difiere del período del último consecutivo (cambio de año o
// mes según reset_frequency), el contador arranca de nuevo en 1. El RETURNING
// devuelve el valor asignado junto con la instantánea de configuración, de
// modo que render y asignación vean el mismo estado sin una segunda lectura.
func (r *NumberingConfigRepo) AllocateNext(ctx context.Context, companyID, documentType, periodKey string) (*repository.AllocatedNumber, error) {
	const q = `
		UPDATE numbering_configs
		SET next_sequence = (CASE WHEN period_key = $3 THEN next_sequence ELSE 1 END) + 1,
			period_key = $3,
			updated_at = now()
		WHERE company_id = $1 AND document_type = $2
		RETURNING next_sequence - 1, id, prefix_template, format_template,
			sequence_length, reset_frequency, allow_manual_override`
	var (
		alloc   repository.AllocatedNumber
		resetFq string
	)
	cfg := &alloc.Config
	err := r.q.QueryRow(ctx, q, companyID, documentType, periodKey).Scan(
		&alloc.Sequence, &cfg.ID, &cfg.PrefixTemplate, &cfg.FormatTemplate,
		&cfg.SequenceLength, &resetFq, &cfg.AllowManualOverride,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("allocate sequence: %w", err)
	}
	cfg.CompanyID = companyID
	cfg.DocumentType = documentType
	cfg.ResetFrequency = numbering.ResetFrequency(resetFq)
	cfg.PeriodKey = periodKey
	cfg.NextSequence = alloc.Sequence + 1
	return &alloc, nil
}

const selectNumberingConfig = `
	SELECT id, company_id, document_type, prefix_template, format_template,
		sequence_length, reset_frequency, next_sequence, allow_manual_override,
		period_key, created_at, updated_at
	FROM numbering_configs`

func scanNumberingConfig(row pgxScanner) (*entity.NumberingConfig, error) {
	var c entity.NumberingConfig
	var resetFq string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.DocumentType, &c.PrefixTemplate, &c.FormatTemplate,
		&c.SequenceLength, &resetFq, &c.NextSequence, &c.AllowManualOverride,
		&c.PeriodKey, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ResetFrequency = numbering.ResetFrequency(resetFq)
	return &c, nil
}
