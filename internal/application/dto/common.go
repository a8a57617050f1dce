package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationDetail problema de validación de un campo.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OKResponse respuesta simple de éxito.
type OKResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
