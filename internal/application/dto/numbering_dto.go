package dto

// NumberingSettingsRequest body para PUT /api/numbering/:document_type.
// Campos en cero/vacío significan "usar el valor por defecto del motor".
type NumberingSettingsRequest struct {
	PrefixTemplate      string `json:"prefix_template,omitempty"`
	FormatTemplate      string `json:"format_template,omitempty"`
	SequenceLength      int    `json:"sequence_length,omitempty"`
	ResetFrequency      string `json:"reset_frequency,omitempty"` // NEVER|YEARLY|MONTHLY
	AllowManualOverride bool   `json:"allow_manual_override"`
}

// NumberingSettingsResponse configuración vigente para la pantalla de
// ajustes, junto con la descripción legible del reinicio y una
// previsualización del próximo número.
type NumberingSettingsResponse struct {
	DocumentType        string          `json:"document_type"`
	PrefixTemplate      string          `json:"prefix_template"`
	FormatTemplate      string          `json:"format_template"`
	SequenceLength      int             `json:"sequence_length"`
	ResetFrequency      string          `json:"reset_frequency"`
	ResetDescription    string          `json:"reset_description"`
	NextSequence        int64           `json:"next_sequence"`
	AllowManualOverride bool            `json:"allow_manual_override"`
	Preview             PreviewResponse `json:"preview"`
}

// NumberingPreviewRequest body para POST /api/numbering/:document_type/preview.
// Lleva la configuración en borrador de la pantalla más overrides opcionales
// para explorar fechas o secuencias concretas.
type NumberingPreviewRequest struct {
	NumberingSettingsRequest
	Date     string `json:"date,omitempty"` // YYYY-MM-DD
	Sequence *int64 `json:"sequence,omitempty"`
}

// PreviewResponse resultado de la previsualización, errores y advertencias
// incluidos. Errors no vacío bloquea el guardado; Warnings nunca bloquea.
type PreviewResponse struct {
	Value          string   `json:"value"`
	ResolvedPrefix string   `json:"resolved_prefix"`
	Sequence       int64    `json:"sequence"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
}
