package domain

// Category agrupa produtos do catálogo (ex.: "T-shirts Homme").
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
