// Package numbering implementa el motor de numeración de documentos:
// renderiza el número legible de una factura o nota crédito a partir de una
// configuración de plantillas con tokens, una fecha de referencia y un
// consecutivo, y reporta los problemas de validación de las plantillas.
//
// Todo el paquete es puro: sin I/O, sin estado entre llamadas, sin efectos
// secundarios. La asignación y el reinicio reales del consecutivo
// (next_sequence) pertenecen a la capa de persistencia; aquí solo se
// previsualiza un valor dado y se describe la semántica de reinicio.
package numbering

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Valores por defecto cuando la configuración llega parcial (borradores de la
// pantalla de ajustes): los campos en cero se consideran ausentes.
const (
	DefaultPrefixTemplate = "INV-{YYYY}"
	DefaultFormatTemplate = "{PREFIX}-{YYYY}-{SEQ}"
	DefaultSequenceLength = 3

	// Rango nominal del ancho de relleno del consecutivo.
	MinSequenceLength = 1
	MaxSequenceLength = 10
)

// ResetFrequency indica la cadencia con la que el backend reinicia el
// consecutivo. Para el motor es informativa: nunca ejecuta un reinicio.
type ResetFrequency string

const (
	ResetNever   ResetFrequency = "NEVER"
	ResetYearly  ResetFrequency = "YEARLY"
	ResetMonthly ResetFrequency = "MONTHLY"
)

// Valid reporta si la frecuencia es una de las tres conocidas.
func (f ResetFrequency) Valid() bool {
	switch f {
	case ResetNever, ResetYearly, ResetMonthly:
		return true
	}
	return false
}

// PeriodKey devuelve la llave de período para la fecha dada: dos consecutivos
// pertenecen al mismo período si y solo si su llave coincide. Es la base de la
// asignación atómica con reinicio en la capa de persistencia.
func (f ResetFrequency) PeriodKey(t time.Time) string {
	switch f {
	case ResetYearly:
		return t.Format("2006")
	case ResetMonthly:
		return t.Format("2006-01")
	default:
		return "-" // NEVER: llave constante, nunca cambia de período
	}
}

// DescribeResetFrequency devuelve el texto de ayuda para la UI de ajustes.
func DescribeResetFrequency(f ResetFrequency) string {
	switch f {
	case ResetYearly:
		return "El consecutivo se reinicia en 1 al comenzar cada año."
	case ResetMonthly:
		return "El consecutivo se reinicia en 1 al comenzar cada mes."
	case ResetNever:
		return "El consecutivo nunca se reinicia; crece indefinidamente."
	}
	return "Frecuencia de reinicio desconocida."
}

// Config es la instantánea de configuración de numeración. El motor la trata
// como entrada inmutable; la dueña del contador es la capa de persistencia.
// Los campos en su valor cero se consideran ausentes y caen a los defaults.
type Config struct {
	PrefixTemplate      string
	FormatTemplate      string
	SequenceLength      int
	ResetFrequency      ResetFrequency
	NextSequence        int64
	AllowManualOverride bool
}

// Overrides sustituye campos puntuales de la configuración para una sola
// previsualización (pantalla de ajustes: "qué pasaría si guardo esto").
// La fusión es campo a campo, nunca reemplazo del objeto completo.
type Overrides struct {
	Date           *time.Time
	Sequence       *int64
	PrefixTemplate *string
	FormatTemplate *string
	SequenceLength *int
}

// PreviewResult es el resultado efímero de una previsualización.
// Errors no vacío significa que Value no debe persistirse como definitivo.
type PreviewResult struct {
	Value          string
	ResolvedPrefix string
	Sequence       int64
	Errors         []string
	Warnings       []string
}

// OK reporta si la previsualización no tiene errores bloqueantes.
func (r PreviewResult) OK() bool { return len(r.Errors) == 0 }

// tokenPattern reconoce únicamente nombres de token en mayúsculas dentro de
// llaves. Cualquier otro contenido ({seq}, {1}, {x-y}) no es un token y se
// conserva intacto en la salida.
var tokenPattern = regexp.MustCompile(`\{[A-Z]+\}`)

// Preview renderiza el número en dos pasadas y acumula errores y advertencias.
//
//  1. La plantilla de prefijo se resuelve solo con tokens de fecha
//     ({YYYY}, {YY}, {MM}, {DD}).
//  2. La plantilla de formato se resuelve con tokens de fecha más {PREFIX}
//     (el prefijo resuelto) y {SEQ} (el consecutivo con relleno de ceros).
//
// Los tokens desconocidos pasan tal cual: una plantilla malformada queda
// visible en el resultado en lugar de perder caracteres en silencio.
// ov puede ser nil. Si no se sobreescribe la fecha se usa time.Now().
func Preview(cfg Config, ov *Overrides) PreviewResult {
	prefixTpl := cfg.PrefixTemplate
	if prefixTpl == "" {
		prefixTpl = DefaultPrefixTemplate
	}
	formatTpl := cfg.FormatTemplate
	if formatTpl == "" {
		formatTpl = DefaultFormatTemplate
	}
	length := DefaultSequenceLength
	lengthExplicit := false
	if cfg.SequenceLength != 0 {
		length = cfg.SequenceLength
		lengthExplicit = true
	}
	seq := cfg.NextSequence
	date := time.Now()

	if ov != nil {
		if ov.PrefixTemplate != nil {
			prefixTpl = *ov.PrefixTemplate
		}
		if ov.FormatTemplate != nil {
			formatTpl = *ov.FormatTemplate
		}
		if ov.SequenceLength != nil {
			length = *ov.SequenceLength
			lengthExplicit = true
		}
		if ov.Sequence != nil {
			seq = *ov.Sequence
		}
		if ov.Date != nil {
			date = *ov.Date
		}
	}

	var res PreviewResult

	// Validación bloqueante: sin {SEQ} el número no identifica la posición
	// del documento en la secuencia.
	if !strings.Contains(formatTpl, "{SEQ}") {
		res.Errors = append(res.Errors, "la plantilla de formato no contiene el token {SEQ}")
	}
	if strings.TrimSpace(prefixTpl) == "" {
		res.Errors = append(res.Errors, "la plantilla de prefijo está vacía")
	}
	if lengthExplicit && (length < MinSequenceLength || length > MaxSequenceLength) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"la longitud del consecutivo debe estar entre %d y %d", MinSequenceLength, MaxSequenceLength))
	}

	// Aun con errores se renderiza un valor best-effort, por eso la longitud
	// se acota al rango en lugar de rechazarse.
	renderLength := length
	if renderLength < MinSequenceLength {
		renderLength = MinSequenceLength
	}
	if renderLength > MaxSequenceLength {
		renderLength = MaxSequenceLength
	}
	if seq < 0 {
		seq = 0
	}

	dates := dateTokens(date)
	res.ResolvedPrefix = renderTokens(prefixTpl, dates)
	if strings.TrimSpace(res.ResolvedPrefix) == "" {
		res.Warnings = append(res.Warnings, "el prefijo resuelto queda vacío para la fecha indicada")
	}
	if !strings.Contains(formatTpl, "{PREFIX}") {
		res.Warnings = append(res.Warnings, "la plantilla de formato no usa el token {PREFIX}")
	}

	values := make(map[string]string, len(dates)+2)
	for k, v := range dates {
		values[k] = v
	}
	values["{PREFIX}"] = res.ResolvedPrefix
	// El relleno es un ancho mínimo, no máximo: un consecutivo más largo que
	// la longitud nominal se renderiza completo, nunca truncado.
	values["{SEQ}"] = fmt.Sprintf("%0*d", renderLength, seq)

	res.Value = renderTokens(formatTpl, values)
	res.Sequence = seq
	return res
}

// dateTokens construye los valores de los tokens de fecha.
func dateTokens(t time.Time) map[string]string {
	return map[string]string{
		"{YYYY}": fmt.Sprintf("%04d", t.Year()),
		"{YY}":   fmt.Sprintf("%02d", t.Year()%100),
		"{MM}":   fmt.Sprintf("%02d", int(t.Month())),
		"{DD}":   fmt.Sprintf("%02d", t.Day()),
	}
}

// renderTokens aplica una sustitución por cada token reconocido; los que no
// están en el mapa se devuelven sin cambios.
func renderTokens(template string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := values[m]; ok {
			return v
		}
		return m
	})
}
