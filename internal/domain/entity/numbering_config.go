package entity

import (
	"time"

	"github.com/gestionpro/gestion-api/internal/domain/numbering"
)

// Tipos de documento con numeración propia. Cada empresa tiene a lo sumo una
// configuración por tipo.
const (
	DocumentTypeInvoice    = "invoice"
	DocumentTypeCreditNote = "credit_note"
)

// IsAllowedDocumentType reporta si el tipo de documento tiene numeración.
func IsAllowedDocumentType(t string) bool {
	return t == DocumentTypeInvoice || t == DocumentTypeCreditNote
}

// NumberingConfig es la configuración de numeración persistida de una empresa
// para un tipo de documento. PeriodKey es la llave del período del último
// consecutivo asignado: cuando cambia (según ResetFrequency), la asignación
// atómica reinicia el contador en 1.
type NumberingConfig struct {
	ID                  string
	CompanyID           string
	DocumentType        string // ver constantes DocumentType*
	PrefixTemplate      string
	FormatTemplate      string
	SequenceLength      int
	ResetFrequency      numbering.ResetFrequency
	NextSequence        int64
	AllowManualOverride bool
	PeriodKey           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Engine devuelve la instantánea pura que consume el motor de numeración.
func (c *NumberingConfig) Engine() numbering.Config {
	return numbering.Config{
		PrefixTemplate:      c.PrefixTemplate,
		FormatTemplate:      c.FormatTemplate,
		SequenceLength:      c.SequenceLength,
		ResetFrequency:      c.ResetFrequency,
		NextSequence:        c.NextSequence,
		AllowManualOverride: c.AllowManualOverride,
	}
}
