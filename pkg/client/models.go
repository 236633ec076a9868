package client

// Role é o papel do usuário devolvido pela API.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User é o usuário da sessão atual.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role"`
}

// IsAdmin informa se o usuário tem papel ADMIN.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// UpdateProfileRequest altera apenas os campos não-nil.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// AuthResponse é a resposta de registro, login e atualização de perfil.
type AuthResponse struct {
	Token     string `json:"token,omitempty"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (r AuthResponse) user() *User {
	return &User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
	}
}

type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
}

type Product struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name" validate:"required"`
	BrandName string   `json:"brandName" validate:"required"`
	Price     float64  `json:"price" validate:"required"`
	ImageURL  string   `json:"imageUrl" validate:"required"`
	Category  Category `json:"category" validate:"-"`
}

// ProductFilter são os filtros opcionais da listagem.
type ProductFilter struct {
	CategoryID int64
	Search     string
}

type messageResponse struct {
	Message string `json:"message"`
}
