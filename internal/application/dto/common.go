package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningResponse respuesta de éxito degradado (ej. caché local llena:
// el cambio quedó en memoria pero no se pudo persistir localmente).
type WarningResponse struct {
	Warning string `json:"warning"`
}
