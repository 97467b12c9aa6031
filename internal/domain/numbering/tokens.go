package numbering

// TokenHelp describe un token de plantilla para el texto de ayuda de la UI.
type TokenHelp struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

// Tokens devuelve el vocabulario cerrado de tokens reconocidos, en el orden
// en que deben mostrarse en la pantalla de ajustes.
func Tokens() []TokenHelp {
	return []TokenHelp{
		{Token: "{PREFIX}", Description: "Prefijo resuelto a partir de la plantilla de prefijo."},
		{Token: "{YYYY}", Description: "Año con cuatro dígitos (ej: 2025)."},
		{Token: "{YY}", Description: "Año con dos dígitos (ej: 25)."},
		{Token: "{MM}", Description: "Mes con dos dígitos (01-12)."},
		{Token: "{DD}", Description: "Día del mes con dos dígitos (01-31)."},
		{Token: "{SEQ}", Description: "Consecutivo con relleno de ceros a la longitud configurada."},
	}
}
