package model

// Product represents a catalogue entry. ID is zero until the product is persisted.
type Product struct {
	ID          int     `json:"id" db:"id"`
	CategoryID  int     `json:"categoryId" db:"category_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Stock       int     `json:"stock" db:"stock"`
	Price       float64 `json:"price" db:"price"`
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	CategoryID  int     `json:"categoryId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
}

// ToProduct converts the request into an unsaved Product.
func (r *CreateProductRequest) ToProduct() Product {
	return Product{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Stock:       r.Stock,
		Price:       r.Price,
	}
}
