package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrNumberingInvalid: la configuración de numeración previsualiza con
	// errores; no puede persistirse ni usarse para emitir documentos.
	ErrNumberingInvalid = errors.New("configuración de numeración inválida")

	// ErrManualNumberNotAllowed: la configuración del tenant no permite
	// sustituir el consecutivo manualmente al emitir un documento.
	ErrManualNumberNotAllowed = errors.New("la numeración manual no está permitida")
)
