package domain

// Product representa um item do catálogo, sempre associado a uma categoria.
type Product struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	BrandName string   `json:"brandName" validate:"required,min=2,max=255"`
	Price     float64  `json:"price" validate:"gte=0.01"`
	ImageURL  string   `json:"imageUrl" validate:"required,max=500"`
	Category  Category `json:"category"`
}

// ProductFilter define os filtros da listagem do catálogo.
// Search tem precedência sobre CategoryID; ambos vazios listam tudo.
type ProductFilter struct {
	CategoryID int64
	Search     string
}
