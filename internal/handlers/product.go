package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sncandles/storefront/internal/es"
	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/logging"
	"github.com/sncandles/storefront/internal/models"
	"github.com/sncandles/storefront/internal/util"
)

// ProductHandler serves the server-held catalog. Stable catalog ids let a
// client send just an id and quantity instead of scraping page markup.
type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) index(c echo.Context, p models.Product) {
	if h.ES == nil {
		return
	}
	if err := es.IndexProduct(c.Request().Context(), h.ES, h.ESIndex, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "product", p.ID, "error", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	var items []models.Product
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Image       string  `json:"image"`
		Page        string  `json:"page"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Price < 0 {
		return fail(c, http.StatusBadRequest, "name is required and price must be non-negative")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Page:        req.Page,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	h.index(c, product)
	publish(c, h.Producer, events.TopicProductEvents, strconv.Itoa(product.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Image       string  `json:"image"`
		Page        string  `json:"page"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "product not found")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Image = req.Image
	product.Page = req.Page

	if err := h.DB.Save(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	h.index(c, product)
	publish(c, h.Producer, events.TopicProductEvents, strconv.Itoa(product.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if h.ES != nil {
		if err := es.DeleteProduct(c.Request().Context(), h.ES, h.ESIndex, id); err != nil {
			logging.FromContext(c.Request().Context()).Error("es delete error", "product", id, "error", err)
		}
	}
	publish(c, h.Producer, events.TopicProductEvents, strconv.Itoa(id), map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
