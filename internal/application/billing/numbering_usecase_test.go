package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/numbering"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes de numeración: GetSettings / SaveSettings
// ──────────────────────────────────────────────────────────────────────────────

// TestNumberingGetSettings_SinConfiguracionDevuelveDefaults: una empresa que
// nunca guardó ajustes ve los defaults del motor con el contador en 1, sin
// que se persista nada.
func TestNumberingGetSettings_SinConfiguracionDevuelveDefaults(t *testing.T) {
	w := newBillingWorld()

	resp, err := w.numberingUC.GetSettings(context.Background(), "empresa-1", entity.DocumentTypeInvoice)
	require.NoError(t, err)

	assert.Equal(t, numbering.DefaultPrefixTemplate, resp.PrefixTemplate)
	assert.Equal(t, numbering.DefaultFormatTemplate, resp.FormatTemplate)
	assert.Equal(t, numbering.DefaultSequenceLength, resp.SequenceLength)
	assert.Equal(t, string(numbering.ResetNever), resp.ResetFrequency)
	assert.Equal(t, int64(1), resp.NextSequence)
	assert.Empty(t, resp.Preview.Errors, "los defaults previsualizan sin errores")

	stored, err := w.numbering.GetByCompanyAndType(context.Background(), "empresa-1", entity.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Nil(t, stored, "consultar ajustes no debe persistir nada")
}

// TestNumberingSaveSettings_RechazaPlantillaSinSEQ: un formato sin {SEQ}
// previsualiza con errores y el guardado se rechaza sin tocar el repositorio.
func TestNumberingSaveSettings_RechazaPlantillaSinSEQ(t *testing.T) {
	w := newBillingWorld()

	_, err := w.numberingUC.SaveSettings(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingSettingsRequest{FormatTemplate: "FACT-{YYYY}"})
	require.ErrorIs(t, err, domain.ErrNumberingInvalid)

	stored, err := w.numbering.GetByCompanyAndType(context.Background(), "empresa-1", entity.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// TestNumberingSaveSettings_NoReiniciaContador: cambiar las plantillas de una
// configuración existente conserva el contador y la identidad del registro.
func TestNumberingSaveSettings_NoReiniciaContador(t *testing.T) {
	w := newBillingWorld()
	require.NoError(t, w.numbering.Upsert(context.Background(), &entity.NumberingConfig{
		ID:           "cfg-1",
		CompanyID:    "empresa-1",
		DocumentType: entity.DocumentTypeInvoice,
		NextSequence: 42,
		PeriodKey:    "-",
	}))

	resp, err := w.numberingUC.SaveSettings(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingSettingsRequest{
			PrefixTemplate: "FV",
			FormatTemplate: "{PREFIX}-{SEQ}",
			SequenceLength: 5,
		})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.NextSequence, "guardar plantillas nunca reinicia la secuencia")

	stored, err := w.numbering.GetByCompanyAndType(context.Background(), "empresa-1", entity.DocumentTypeInvoice)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "cfg-1", stored.ID)
	assert.Equal(t, int64(42), stored.NextSequence)
	assert.Equal(t, "FV", stored.PrefixTemplate)
	assert.Equal(t, 5, stored.SequenceLength)
}

// TestNumberingSaveSettings_FrecuenciaDesconocida: una frecuencia fuera del
// vocabulario es entrada inválida, no configuración inválida.
func TestNumberingSaveSettings_FrecuenciaDesconocida(t *testing.T) {
	w := newBillingWorld()

	_, err := w.numberingUC.SaveSettings(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingSettingsRequest{ResetFrequency: "WEEKLY"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestNumbering_TipoDocumentoDesconocido: solo invoice y credit_note tienen
// numeración configurable.
func TestNumbering_TipoDocumentoDesconocido(t *testing.T) {
	w := newBillingWorld()

	_, err := w.numberingUC.GetSettings(context.Background(), "empresa-1", "purchase_order")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = w.numberingUC.SaveSettings(context.Background(), "empresa-1", "purchase_order", dto.NumberingSettingsRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Previsualización
// ──────────────────────────────────────────────────────────────────────────────

// TestNumberingPreview_ConOverrides: la previsualización usa la configuración
// en borrador del request con los overrides de fecha y secuencia, sin
// persistir nada.
func TestNumberingPreview_ConOverrides(t *testing.T) {
	w := newBillingWorld()
	seq := int64(123)

	resp, err := w.numberingUC.Preview(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingPreviewRequest{
			NumberingSettingsRequest: dto.NumberingSettingsRequest{
				PrefixTemplate: "FV-{MM}",
				FormatTemplate: "{PREFIX}/{SEQ}",
				SequenceLength: 6,
			},
			Date:     "2025-03-09",
			Sequence: &seq,
		})
	require.NoError(t, err)

	assert.Equal(t, "FV-03/000123", resp.Value)
	assert.Equal(t, "FV-03", resp.ResolvedPrefix)
	assert.Equal(t, int64(123), resp.Sequence)
	assert.Empty(t, resp.Errors)
}

// TestNumberingPreview_UsaContadorAlmacenado: sin override de secuencia, la
// vista toma el próximo consecutivo guardado de la empresa.
func TestNumberingPreview_UsaContadorAlmacenado(t *testing.T) {
	w := newBillingWorld()
	require.NoError(t, w.numbering.Upsert(context.Background(), &entity.NumberingConfig{
		ID:           "cfg-1",
		CompanyID:    "empresa-1",
		DocumentType: entity.DocumentTypeInvoice,
		NextSequence: 7,
		PeriodKey:    "-",
	}))

	resp, err := w.numberingUC.Preview(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingPreviewRequest{
			NumberingSettingsRequest: dto.NumberingSettingsRequest{
				PrefixTemplate: "FV",
				FormatTemplate: "{PREFIX}-{SEQ}",
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "FV-007", resp.Value)
	assert.Equal(t, int64(7), resp.Sequence)
}

// TestNumberingPreview_ReportaErroresSinBloquear: la previsualización devuelve
// el resultado completo aunque tenga errores; rechazar es trabajo del guardado.
func TestNumberingPreview_ReportaErroresSinBloquear(t *testing.T) {
	w := newBillingWorld()

	resp, err := w.numberingUC.Preview(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingPreviewRequest{
			NumberingSettingsRequest: dto.NumberingSettingsRequest{FormatTemplate: "FACT-{YYYY}"},
		})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Errors, "formato sin {SEQ} debe reportar error")
}

// TestNumberingPreview_FechaInvalida: una fecha que no es YYYY-MM-DD se
// rechaza antes de previsualizar.
func TestNumberingPreview_FechaInvalida(t *testing.T) {
	w := newBillingWorld()

	_, err := w.numberingUC.Preview(context.Background(), "empresa-1", entity.DocumentTypeInvoice,
		dto.NumberingPreviewRequest{Date: "09/03/2025"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestNumberingTokens_VocabularioCerrado: la ayuda expone los seis tokens.
func TestNumberingTokens_VocabularioCerrado(t *testing.T) {
	w := newBillingWorld()

	tokens := w.numberingUC.Tokens()
	require.Len(t, tokens, 6)
	names := make([]string, 0, len(tokens))
	for _, tk := range tokens {
		names = append(names, tk.Token)
	}
	assert.Contains(t, names, "{SEQ}")
	assert.Contains(t, names, "{PREFIX}")
}
