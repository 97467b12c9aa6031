package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/gestion-api/internal/domain/numbering"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func seqPtr(n int64) *int64   { return &n }
func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo de numeración
// ──────────────────────────────────────────────────────────────────────────────

// TestPreview_EscenarioCompleto reproduce el escenario de extremo a extremo:
// prefijo "INV-{YYYY}", formato "{PREFIX}-{MM}-{SEQ}", longitud 4 y
// consecutivo 42 en marzo de 2025 deben producir "INV-2025-03-0042".
func TestPreview_EscenarioCompleto(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{MM}-{SEQ}",
		SequenceLength: 4,
		NextSequence:   42,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 15)})

	require.Empty(t, res.Errors, "una configuración válida no debe reportar errores")
	assert.Equal(t, "INV-2025-03-0042", res.Value)
	assert.Equal(t, "INV-2025", res.ResolvedPrefix)
	assert.Equal(t, int64(42), res.Sequence)
}

// TestPreview_Determinista verifica la propiedad de función pura: con entradas
// fijas (incluida la fecha), dos llamadas producen exactamente lo mismo.
func TestPreview_Determinista(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "FAC-{YY}",
		FormatTemplate: "{PREFIX}/{MM}/{SEQ}",
		SequenceLength: 5,
		NextSequence:   7,
	}
	ov := &numbering.Overrides{Date: datePtr(2024, time.December, 31)}

	r1 := numbering.Preview(cfg, ov)
	r2 := numbering.Preview(cfg, ov)
	assert.Equal(t, r1, r2, "el mismo input siempre debe producir el mismo resultado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Defaults y fusión de overrides
// ──────────────────────────────────────────────────────────────────────────────

// TestPreview_DefaultsConConfigVacia: una configuración totalmente ausente cae
// a los defaults documentados ("INV-{YYYY}", "{PREFIX}-{YYYY}-{SEQ}", 3).
func TestPreview_DefaultsConConfigVacia(t *testing.T) {
	res := numbering.Preview(numbering.Config{}, &numbering.Overrides{
		Date:     datePtr(2025, time.January, 2),
		Sequence: seqPtr(1),
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, "INV-2025-2025-001", res.Value)
	assert.Equal(t, "INV-2025", res.ResolvedPrefix)
}

// TestPreview_OverrideSoloSecuencia: un override que solo trae el consecutivo
// debe seguir usando las plantillas de la configuración (fusión campo a campo,
// nunca reemplazo del objeto completo).
func TestPreview_OverrideSoloSecuencia(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "NC-{YYYY}",
		FormatTemplate: "{PREFIX}-{SEQ}",
		SequenceLength: 3,
		NextSequence:   9,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{
		Date:     datePtr(2025, time.June, 1),
		Sequence: seqPtr(55),
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, "NC-2025-055", res.Value, "las plantillas deben venir de la configuración")
	assert.Equal(t, int64(55), res.Sequence, "el consecutivo debe venir del override")
}

// TestPreview_OverridePlantillas: los overrides de plantilla y longitud tienen
// precedencia sobre la configuración para esa única previsualización.
func TestPreview_OverridePlantillas(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{SEQ}",
		SequenceLength: 3,
		NextSequence:   4,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{
		Date:           datePtr(2025, time.February, 20),
		PrefixTemplate: strPtr("FV{YY}"),
		FormatTemplate: strPtr("{PREFIX}-{DD}-{SEQ}"),
		SequenceLength: intPtr(6),
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, "FV25-20-000004", res.Value)
	assert.Equal(t, "FV25", res.ResolvedPrefix)
}

// ──────────────────────────────────────────────────────────────────────────────
// Relleno de ceros
// ──────────────────────────────────────────────────────────────────────────────

// TestPreview_RellenoEsAnchoMinimo: longitud 3 con consecutivo 7 → "007",
// pero con 1234 → "1234" (el relleno nunca trunca).
func TestPreview_RellenoEsAnchoMinimo(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{SEQ}",
		SequenceLength: 3,
	}
	ov := &numbering.Overrides{Date: datePtr(2025, time.March, 1), Sequence: seqPtr(7)}
	assert.Contains(t, numbering.Preview(cfg, ov).Value, "007")

	ov.Sequence = seqPtr(1234)
	res := numbering.Preview(cfg, ov)
	assert.Contains(t, res.Value, "1234", "un consecutivo más largo que la longitud se renderiza completo")
	assert.NotContains(t, res.Value, "-234", "el consecutivo no debe truncarse")
}

// TestPreview_SecuenciaNegativaSeAcotaACero verifica max(0, sequence).
func TestPreview_SecuenciaNegativaSeAcotaACero(t *testing.T) {
	res := numbering.Preview(numbering.Config{}, &numbering.Overrides{
		Date:     datePtr(2025, time.March, 1),
		Sequence: seqPtr(-8),
	})
	assert.Equal(t, int64(0), res.Sequence)
	assert.Contains(t, res.Value, "000")
}

// TestPreview_LongitudFueraDeRango: se reporta error pero el render sigue en
// modo best-effort con la longitud acotada al rango [1,10].
func TestPreview_LongitudFueraDeRango(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{SEQ}",
	}
	ov := &numbering.Overrides{
		Date:           datePtr(2025, time.March, 1),
		Sequence:       seqPtr(5),
		SequenceLength: intPtr(25),
	}
	res := numbering.Preview(cfg, ov)

	require.NotEmpty(t, res.Errors, "longitud fuera de [1,10] debe ser un error bloqueante")
	assert.False(t, res.OK())
	assert.Contains(t, res.Value, "0000000005", "el render debe acotar la longitud a 10")

	ov.SequenceLength = intPtr(0)
	res = numbering.Preview(cfg, ov)
	require.NotEmpty(t, res.Errors, "longitud 0 explícita también es error")
	assert.Contains(t, res.Value, "INV-2025-5", "el render debe acotar la longitud a 1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens desconocidos
// ──────────────────────────────────────────────────────────────────────────────

// TestPreview_TokenDesconocidoPasaIntacto: {FOO} no se sustituye ni se borra;
// una plantilla malformada queda visible para depurarla.
func TestPreview_TokenDesconocidoPasaIntacto(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{FOO}-{SEQ}",
		SequenceLength: 3,
		NextSequence:   1,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 1)})
	assert.Contains(t, res.Value, "{FOO}")
}

// TestPreview_SoloTokensEnMayusculas: {seq} en minúsculas y {1} no son tokens
// y se conservan tal cual en la salida.
func TestPreview_SoloTokensEnMayusculas(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{yyyy}",
		FormatTemplate: "{PREFIX}-{seq}-{1}-{SEQ}",
		SequenceLength: 2,
		NextSequence:   3,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 1)})

	assert.Equal(t, "INV-{yyyy}", res.ResolvedPrefix)
	assert.Contains(t, res.Value, "{seq}")
	assert.Contains(t, res.Value, "{1}")
	assert.Contains(t, res.Value, "03")
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y advertencias
// ──────────────────────────────────────────────────────────────────────────────

// TestPreview_FormatoSinSEQ_EsError: una plantilla de formato sin {SEQ} debe
// reportar un error que bloquee la persistencia.
func TestPreview_FormatoSinSEQ_EsError(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{PREFIX}-{YYYY}",
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 1)})

	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "{SEQ}")
	assert.False(t, res.OK())
}

// TestPreview_PrefijoEnBlanco_EsError: plantilla de prefijo vacía o solo
// espacios es error bloqueante (vía override explícito, ya que el campo
// ausente cae al default).
func TestPreview_PrefijoEnBlanco_EsError(t *testing.T) {
	res := numbering.Preview(numbering.Config{}, &numbering.Overrides{
		Date:           datePtr(2025, time.March, 1),
		PrefixTemplate: strPtr("   "),
	})
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "prefijo")
}

// TestPreview_PrefijoResueltoVacio_EsAdvertencia: un prefijo que renderiza en
// blanco no bloquea el guardado, solo advierte.
func TestPreview_PrefijoResueltoVacio_EsAdvertencia(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "{FOO}",
		FormatTemplate: "{PREFIX}-{SEQ}",
	}
	// {FOO} es desconocido y pasa intacto, así que el prefijo no queda vacío.
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 1)})
	assert.Empty(t, res.Warnings)

	// Un prefijo de solo espacios (explícito) sí renderiza en blanco.
	res = numbering.Preview(cfg, &numbering.Overrides{
		Date:           datePtr(2025, time.March, 1),
		PrefixTemplate: strPtr(" "),
	})
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "vacío")
}

// TestPreview_FormatoSinPREFIX_EsAdvertencia: omitir {PREFIX} es válido pero
// probablemente un error de configuración, por eso solo advierte.
func TestPreview_FormatoSinPREFIX_EsAdvertencia(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "INV-{YYYY}",
		FormatTemplate: "{YYYY}-{SEQ}",
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2025, time.March, 1)})

	assert.Empty(t, res.Errors, "omitir {PREFIX} no es un error")
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "{PREFIX}")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens de fecha
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_TokensDeFecha(t *testing.T) {
	cfg := numbering.Config{
		PrefixTemplate: "{YYYY}{YY}{MM}{DD}",
		FormatTemplate: "{PREFIX}-{SEQ}",
		SequenceLength: 1,
		NextSequence:   1,
	}
	res := numbering.Preview(cfg, &numbering.Overrides{Date: datePtr(2026, time.September, 5)})
	assert.Equal(t, "2026260905", res.ResolvedPrefix, "{YYYY}{YY}{MM}{DD} para 2026-09-05")
}

// ──────────────────────────────────────────────────────────────────────────────
// Semántica de reinicio y vocabulario de tokens
// ──────────────────────────────────────────────────────────────────────────────

func TestDescribeResetFrequency(t *testing.T) {
	assert.Contains(t, numbering.DescribeResetFrequency(numbering.ResetNever), "nunca")
	assert.Contains(t, numbering.DescribeResetFrequency(numbering.ResetYearly), "año")
	assert.Contains(t, numbering.DescribeResetFrequency(numbering.ResetMonthly), "mes")
	assert.NotEmpty(t, numbering.DescribeResetFrequency(numbering.ResetFrequency("WEEKLY")))
}

func TestResetFrequency_PeriodKey(t *testing.T) {
	d := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025", numbering.ResetYearly.PeriodKey(d))
	assert.Equal(t, "2025-03", numbering.ResetMonthly.PeriodKey(d))

	// NEVER produce una llave constante: nunca hay cambio de período.
	d2 := d.AddDate(10, 3, 1)
	assert.Equal(t, numbering.ResetNever.PeriodKey(d), numbering.ResetNever.PeriodKey(d2))
}

func TestResetFrequency_Valid(t *testing.T) {
	assert.True(t, numbering.ResetNever.Valid())
	assert.True(t, numbering.ResetYearly.Valid())
	assert.True(t, numbering.ResetMonthly.Valid())
	assert.False(t, numbering.ResetFrequency("DAILY").Valid())
	assert.False(t, numbering.ResetFrequency("").Valid())
}

// TestTokens_VocabularioCerrado: los seis tokens documentados, en orden.
func TestTokens_VocabularioCerrado(t *testing.T) {
	tokens := numbering.Tokens()
	require.Len(t, tokens, 6)

	got := make([]string, 0, len(tokens))
	for _, tk := range tokens {
		got = append(got, tk.Token)
		assert.NotEmpty(t, tk.Description, "cada token debe traer su descripción de una línea")
	}
	assert.Equal(t, []string{"{PREFIX}", "{YYYY}", "{YY}", "{MM}", "{DD}", "{SEQ}"}, got)
}
