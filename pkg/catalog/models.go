package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product is one sellable catalog unit. The matching engine reads these and
// never mutates them; writes happen only through seeding and the catalog
// owner's own tooling.
type Product struct {
	ID                   string            `gorm:"primaryKey;column:id" json:"id"`
	Name                 string            `gorm:"column:name;index" json:"name"`
	BrandName            string            `gorm:"column:brand_name" json:"brand_name,omitempty"`
	GenericName          string            `gorm:"column:generic_name;index" json:"generic_name,omitempty"`
	Manufacturer         string            `gorm:"column:manufacturer" json:"manufacturer,omitempty"`
	Form                 string            `gorm:"column:form" json:"form,omitempty"`
	Strength             string            `gorm:"column:strength" json:"strength,omitempty"`
	UnitPrice            float64           `gorm:"column:unit_price" json:"unit_price"`
	StockQuantity        int               `gorm:"column:stock_quantity" json:"stock_quantity"`
	PrescriptionRequired bool              `gorm:"column:prescription_required" json:"prescription_required"`
	Active               bool              `gorm:"column:active;index" json:"active"`
	Attributes           datatypes.JSONMap `gorm:"column:attributes" json:"attributes,omitempty"`
	CreatedAt            time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

// CompositionRecord stores a composition in its canonical comparable form.
// NormalizedKey includes strengths; IngredientKey is the sorted ingredient
// names only, relating the same drug across strengths.
type CompositionRecord struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Raw           string    `gorm:"column:raw" json:"raw"`
	NormalizedKey string    `gorm:"column:normalized_key;index" json:"normalized_key"`
	IngredientKey string    `gorm:"column:ingredient_key;index" json:"ingredient_key"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// ProductComposition links a product to a composition record. A product has
// exactly one primary composition and any number of secondary ones.
type ProductComposition struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	ProductID     string    `gorm:"column:product_id;index" json:"product_id"`
	CompositionID string    `gorm:"column:composition_id;index" json:"composition_id"`
	Primary       bool      `gorm:"column:is_primary" json:"primary"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "catalog_products"
}

func (CompositionRecord) TableName() string {
	return "composition_records"
}

func (ProductComposition) TableName() string {
	return "product_compositions"
}
