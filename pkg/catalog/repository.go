package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmakart/platform/pkg/composition"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("catalog product not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Product{}, &CompositionRecord{}, &ProductComposition{})
}

// FindExact returns active products whose display or generic name equals the
// given text, case-insensitively.
func (r *Repository) FindExact(ctx context.Context, text string, limit int) ([]Product, error) {
	var products []Product
	needle := strings.ToLower(strings.TrimSpace(text))
	result := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("LOWER(name) = ? OR LOWER(generic_name) = ?", needle, needle).
		Limit(normalizeLimit(limit)).
		Find(&products)
	return products, result.Error
}

// FindByComposition returns active products linked to a composition record
// matching either the full normalized key (ingredients with strengths) or the
// ingredient-only key.
func (r *Repository) FindByComposition(ctx context.Context, normalizedKey, ingredientKey string, limit int) ([]Product, error) {
	var products []Product
	result := r.db.WithContext(ctx).
		Joins("JOIN product_compositions pc ON pc.product_id = catalog_products.id").
		Joins("JOIN composition_records cr ON cr.id = pc.composition_id").
		Where("catalog_products.active = ?", true).
		Where("cr.normalized_key = ? OR cr.ingredient_key = ?", normalizedKey, ingredientKey).
		Limit(normalizeLimit(limit)).
		Find(&products)
	return products, result.Error
}

// FindContains returns active products whose name or brand name contains the
// text, or whose name is itself contained in the text.
func (r *Repository) FindContains(ctx context.Context, text string, limit int) ([]Product, error) {
	var products []Product
	needle := strings.ToLower(strings.TrimSpace(text))
	result := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where(
			"LOWER(name) LIKE ? OR LOWER(brand_name) LIKE ? OR ? LIKE '%' || LOWER(name) || '%'",
			"%"+needle+"%", "%"+needle+"%", needle,
		).
		Limit(normalizeLimit(limit)).
		Find(&products)
	return products, result.Error
}

// FindByGeneric returns active products whose generic name contains the
// resolved generic, or, when the hypothesis came from the alias table, whose
// name or generic name contains the alias generic key.
func (r *Repository) FindByGeneric(ctx context.Context, generic, aliasKey string, limit int) ([]Product, error) {
	var products []Product
	needle := strings.ToLower(strings.TrimSpace(generic))
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if aliasKey != "" {
		key := strings.ToLower(strings.TrimSpace(aliasKey))
		query = query.Where(
			"LOWER(generic_name) LIKE ? OR LOWER(name) LIKE ? OR LOWER(generic_name) LIKE ?",
			"%"+needle+"%", "%"+key+"%", "%"+key+"%",
		)
	} else {
		query = query.Where("LOWER(generic_name) LIKE ?", "%"+needle+"%")
	}
	result := query.Limit(normalizeLimit(limit)).Find(&products)
	return products, result.Error
}

// ListActive enumerates the active catalog for the fallback scan, bounded by
// limit so one mention cannot walk an unbounded table.
func (r *Repository) ListActive(ctx context.Context, limit int) ([]Product, error) {
	var products []Product
	if limit <= 0 {
		limit = 5000
	}
	result := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Limit(limit).
		Find(&products)
	return products, result.Error
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&product)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &product, nil
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Product{}).Count(&count)
	return count, result.Error
}

// SaveProduct inserts a product together with its primary composition record,
// normalizing the composition text before storage. Existing composition
// records with the same normalized key are reused.
func (r *Repository) SaveProduct(ctx context.Context, product *Product, compositionText string) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if compositionText == "" {
			return nil
		}

		normalized := composition.Normalize(compositionText)
		record := CompositionRecord{
			Raw:           compositionText,
			NormalizedKey: normalized.Key(),
			IngredientKey: normalized.IngredientKey(),
		}

		var existing CompositionRecord
		err := tx.Where("normalized_key = ?", record.NormalizedKey).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record.ID = uuid.New().String()
			record.CreatedAt = now
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			existing = record
		} else if err != nil {
			return err
		}

		link := ProductComposition{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			CompositionID: existing.ID,
			Primary:       true,
			CreatedAt:     now,
		}
		return tx.Create(&link).Error
	})
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
