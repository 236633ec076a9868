package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"O nome da categoria não pode ser vazio."`
}

// MessageResponse é usada em respostas que carregam apenas uma mensagem.
type MessageResponse struct {
	Message string `json:"message" example:"Logout realizado com sucesso."`
}
