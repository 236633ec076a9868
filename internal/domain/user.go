package domain

import "time"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         UserRole  `json:"role"`
	Enabled      bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Os dois papéis fixos do catálogo.
const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// Valid informa se o papel é um dos valores conhecidos.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName,omitempty" validate:"max=100"`
	LastName  string `json:"lastName,omitempty" validate:"max=100"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest é a atualização parcial do perfil: campos nil não são alterados.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
}

// AuthResponse é devolvido pelo registro, login e atualização de perfil.
// Token fica vazio na atualização de perfil.
type AuthResponse struct {
	Token     string   `json:"token,omitempty"`
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// NewAuthResponse monta a resposta a partir do usuário persistido.
func NewAuthResponse(u User, token, message string) AuthResponse {
	return AuthResponse{
		Token:     token,
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Message:   message,
	}
}
