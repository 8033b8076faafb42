package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// Sort options for product listings.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortName       = "name"
	SortPopularity = "popularity" // placeholder until order data exists
	SortSales      = "sales"      // placeholder until order data exists
)

// ProductFilter is the composable filter set for product listings. All
// criteria combine conjunctively; ColorIDs is an OR within itself (a product
// matches when it has any of the selected colors).
type ProductFilter struct {
	Search      string
	CategoryID  *uuid.UUID
	ColorIDs    []uuid.UUID
	PriceMin    *float64
	PriceMax    *float64
	InStockOnly bool
	Sort        string

	// IncludeInactive widens the listing to inactive products for the
	// admin list view. Public listings never set it.
	IncludeInactive bool
}

// QueryService composes filters and sorts over the product catalog.
type QueryService struct {
	db *gorm.DB
}

// NewQueryService constructs QueryService.
func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// Apply builds the filtered, sorted query without executing it, so callers
// can count and paginate on top.
func (q *QueryService) Apply(filter ProductFilter) *gorm.DB {
	query := q.db.Model(&models.Product{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if filter.Search != "" {
		// LOWER+LIKE instead of ILIKE so the predicate works on every
		// dialect, not just Postgres.
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?",
			term, term, term,
		)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if len(filter.ColorIDs) > 0 {
		query = query.Where(
			"id IN (SELECT product_id FROM product_colors WHERE color_id IN ?)",
			filter.ColorIDs,
		)
	}

	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}

	if filter.InStockOnly {
		query = query.Where("stock_quantity > 0")
	}

	switch filter.Sort {
	case SortPriceAsc:
		query = query.Order("price asc")
	case SortPriceDesc:
		query = query.Order("price desc")
	case SortName:
		query = query.Order("name asc")
	default:
		// newest, popularity and sales all resolve here for now
		query = query.Order("created_at desc")
	}

	return query
}

// List executes the filter with pagination and returns the page plus the
// total match count.
func (q *QueryService) List(filter ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	query := q.Apply(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Colors").
		Limit(limit).Offset(offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ProductResult is the JSON shape of a live-search hit.
type ProductResult struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	FormattedPrice string    `json:"formatted_price"`
	Category       string    `json:"category"`
	Image          string    `json:"image"`
	URL            string    `json:"url"`
}

// Search performs the live-search used by the storefront search box: up to
// limit active products matching the term over name, description and SKU.
func (q *QueryService) Search(term string, limit int) ([]ProductResult, error) {
	var products []models.Product
	err := q.Apply(ProductFilter{Search: term}).
		Preload("Category").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	results := make([]ProductResult, 0, len(products))
	for _, product := range products {
		result := ProductResult{
			ID:             product.ID,
			Name:           product.Name,
			Price:          product.Price,
			FormattedPrice: product.FormattedPrice(),
			Image:          product.PrimaryImage,
			URL:            "/productos/" + product.ID.String(),
		}
		if product.Category != nil {
			result.Category = product.Category.Name
		}
		results = append(results, result)
	}

	return results, nil
}

// Featured returns the newest active products for the storefront home page.
func (q *QueryService) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := q.Apply(ProductFilter{}).
		Preload("Category").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
