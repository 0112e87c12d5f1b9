package domain

import "time"

// Product categories are a fixed classification; exact strings, case-sensitive.
const (
	CategoryWelded   = "Welded Specimens"
	CategoryFlawed   = "Base Material Flawed Specimens"
	CategoryAdvanced = "Advanced NDT Validation Specimens"
	CategoryTraining = "POD & Training Specimens"

	// CategoryAll is a filter pseudo-value meaning "no category restriction".
	CategoryAll = "All"
)

// Categories lists every valid product category.
var Categories = []string{
	CategoryWelded,
	CategoryFlawed,
	CategoryAdvanced,
	CategoryTraining,
}

// ValidCategory reports whether v is one of the fixed categories.
func ValidCategory(v string) bool {
	for _, c := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product represents a physical test specimen in the catalog. Every product
// owns exactly one image asset referenced by ImageURL.
type Product struct {
	ID             int64     `json:"id,string" form:"id"`
	Name           string    `gorm:"index" json:"name" form:"name"`
	Description    string    `json:"description" form:"description"`
	Category       string    `gorm:"index;size:64" json:"category" form:"category"`
	Subcategory    string    `gorm:"size:128" json:"subcategory" form:"subcategory"`
	ImageURL       string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	Specifications string    `json:"specifications" form:"specifications"`
	Price          float64   `json:"price" form:"price"`
	InStock        bool      `json:"in_stock" form:"in_stock"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
