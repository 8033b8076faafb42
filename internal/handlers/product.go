package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/imaging"
	"github.com/example/motoluxe/internal/models"
	"github.com/example/motoluxe/internal/storage"
	"github.com/example/motoluxe/internal/utils"
)

// ProductHandler manages product CRUD and media uploads.
type ProductHandler struct {
	db       *gorm.DB
	products *catalog.ProductService
	values   *catalog.ValueStore
	query    *catalog.QueryService
	files    storage.FileStore
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, files storage.FileStore) *ProductHandler {
	return &ProductHandler{
		db:       db,
		products: catalog.NewProductService(db),
		values:   catalog.NewValueStore(db),
		query:    catalog.NewQueryService(db),
		files:    files,
	}
}

// parseFilter reads the listing filters from query params.
func parseFilter(c *fiber.Ctx) catalog.ProductFilter {
	filter := catalog.ProductFilter{
		Search: strings.TrimSpace(c.Query("q")),
		Sort:   c.Query("sort"),
	}

	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CategoryID = &id
		}
	}

	for _, raw := range strings.Split(c.Query("colors"), ",") {
		if raw == "" {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			filter.ColorIDs = append(filter.ColorIDs, id)
		}
	}

	if v := c.Query("price_min"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &val
		}
	}
	if v := c.Query("price_max"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &val
		}
	}

	if v := c.Query("in_stock"); v != "" && v != "false" {
		filter.InStockOnly = true
	}

	return filter
}

// ListProducts returns the paginated public listing with filters applied.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	products, total, err := h.query.List(parseFilter(c), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// AdminListProducts is the admin listing: same filters, inactive included.
func (h *ProductHandler) AdminListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filter := parseFilter(c)
	filter.IncludeInactive = true

	products, total, err := h.query.List(filter, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads the public product detail: the product with its formatted
// attribute values, gallery and up to three related products.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	if !product.IsActive {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	values, err := h.values.ListForProduct(product.ID)
	if err != nil {
		return err
	}

	type valueItem struct {
		models.AttributeValue
		Formatted string `json:"formatted"`
	}
	valueItems := make([]valueItem, 0, len(values))
	for _, v := range values {
		valueItems = append(valueItems, valueItem{AttributeValue: v, Formatted: v.Formatted()})
	}

	related, err := h.products.Related(product, 3)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"product":          product,
			"formatted_price":  product.FormattedPrice(),
			"in_stock":         product.InStock(),
			"attribute_values": valueItems,
			"related_products": related,
		},
	})
}

// SearchProducts is the live-search endpoint behind the storefront search
// box: minimum two characters, five results.
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if len([]rune(term)) < 2 {
		return c.JSON(fiber.Map{"success": true, "data": []catalog.ProductResult{}})
	}

	results, err := h.query.Search(term, 5)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": results})
}

// FeaturedProducts returns the three newest active products for the home page.
func (h *ProductHandler) FeaturedProducts(c *fiber.Ctx) error {
	products, err := h.query.Featured(3)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

type productRequest struct {
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	CategoryID      string            `json:"category_id"`
	Price           float64           `json:"price"`
	Currency        string            `json:"currency"`
	StockQuantity   int               `json:"stock_quantity"`
	IsActive        *bool             `json:"is_active"`
	Description     string            `json:"description"`
	ColorIDs        []string          `json:"color_ids"`
	AttributeValues map[string]string `json:"attribute_values"`
}

func (r productRequest) toSpec() (catalog.ProductSpec, error) {
	spec := catalog.ProductSpec{
		SKU:           r.SKU,
		Name:          r.Name,
		Price:         r.Price,
		Currency:      r.Currency,
		StockQuantity: r.StockQuantity,
		IsActive:      r.IsActive,
		Description:   r.Description,
	}

	if r.CategoryID != "" {
		id, err := uuid.Parse(r.CategoryID)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "invalid category_id")
		}
		spec.CategoryID = id
	}

	for _, raw := range r.ColorIDs {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "invalid color_ids value")
		}
		spec.ColorIDs = append(spec.ColorIDs, id)
	}

	if r.AttributeValues != nil {
		spec.AttributeValues = make(map[uuid.UUID]string, len(r.AttributeValues))
		for raw, value := range r.AttributeValues {
			id, err := uuid.Parse(raw)
			if err != nil {
				return spec, fiber.NewError(fiber.StatusBadRequest, "invalid attribute_values key")
			}
			spec.AttributeValues[id] = value
		}
	}

	return spec, nil
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	spec, err := req.toSpec()
	if err != nil {
		return err
	}

	product, err := h.products.Create(spec)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct applies field changes and replaces colors and attribute
// values when they are present in the payload.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	spec, err := req.toSpec()
	if err != nil {
		return err
	}

	product, err := h.products.Update(id, spec)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// ToggleActive flips the product's active flag.
func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.products.SetActive(id, !product.IsActive); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "is_active": !product.IsActive}})
}

// ReplaceValues is the whole-record attribute write of the admin edit form:
// every existing value is replaced by the submitted non-empty ones.
func (h *ProductHandler) ReplaceValues(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		Values map[string]string `json:"values"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	values := make(map[uuid.UUID]string, len(req.Values))
	for raw, value := range req.Values {
		attrID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid attribute id")
		}
		values[attrID] = value
	}

	if err := h.values.ReplaceAll(id, values); err != nil {
		return respondError(c, err)
	}

	rows, err := h.values.ListForProduct(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// UploadPrimaryImage stores a new primary image for the product. The upload
// runs through the normalization pipeline unless the bytes are identical to
// the current image; a pipeline failure keeps the raw upload.
func (h *ProductHandler) UploadPrimaryImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	data, name, err := readUpload(c, "image")
	if err != nil {
		return err
	}

	if product.PrimaryImage != "" {
		if current, readErr := h.files.Read(product.PrimaryImage); readErr == nil && bytes.Equal(current, data) {
			return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"image": product.PrimaryImage}})
		}
	}

	path, err := h.storeImage(storage.ProductImageDir, name, data)
	if err != nil {
		return err
	}

	previous := product.PrimaryImage
	if err := h.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("primary_image", path).Error; err != nil {
		return err
	}

	if previous != "" {
		if err := h.files.Remove(previous); err != nil {
			log.Printf("failed to remove replaced image %s: %v", previous, err)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"image": path}})
}

// UploadGalleryImage appends one normalized image to the product's gallery.
func (h *ProductHandler) UploadGalleryImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if _, err := h.products.Get(id); err != nil {
		return respondError(c, err)
	}

	data, name, err := readUpload(c, "image")
	if err != nil {
		return err
	}

	path, err := h.storeImage(storage.GalleryImageDir, name, data)
	if err != nil {
		return err
	}

	order, _ := strconv.Atoi(c.FormValue("display_order", "0"))
	entry := models.GalleryImage{
		ProductID:    id,
		Image:        path,
		Caption:      c.FormValue("caption"),
		DisplayOrder: order,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": entry})
}

// DeleteGalleryImage removes one gallery entry and its file.
func (h *ProductHandler) DeleteGalleryImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("imageId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var entry models.GalleryImage
	if err := h.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "gallery image not found")
		}
		return err
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		return err
	}

	if err := h.files.Remove(entry.Image); err != nil {
		log.Printf("failed to remove gallery file %s: %v", entry.Image, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteProduct removes a product, its dependent rows and its media files.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.products.Delete(id); err != nil {
		return respondError(c, err)
	}

	if err := h.files.Remove(product.PrimaryImage); err != nil {
		log.Printf("failed to remove image %s: %v", product.PrimaryImage, err)
	}
	for _, g := range product.GalleryImages {
		if err := h.files.Remove(g.Image); err != nil {
			log.Printf("failed to remove gallery file %s: %v", g.Image, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// storeImage runs the upload through the normalization pipeline and saves
// the result. Normalization failures are logged and the raw bytes are kept;
// an unreadable image must not lose the admin's save.
func (h *ProductHandler) storeImage(dir, name string, data []byte) (string, error) {
	normalized, err := imaging.Normalize(bytes.NewReader(data))
	if err != nil {
		log.Printf("image normalization failed for %s, keeping original: %v", name, err)
		return h.files.Save(dir, name, data)
	}

	return h.files.Save(dir, jpegName(name), normalized)
}

// jpegName swaps the upload's extension for .jpg, since the pipeline always
// encodes JPEG.
func jpegName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx] + ".jpg"
	}
	return name + ".jpg"
}

func readUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "missing image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return data, fileHeader.Filename, nil
}
