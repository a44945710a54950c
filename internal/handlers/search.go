package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sncandles/storefront/internal/logging"
	"github.com/sncandles/storefront/internal/models"
	"github.com/sncandles/storefront/internal/service/search"
	"github.com/sncandles/storefront/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
	DB    *gorm.DB
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return fail(c, http.StatusBadRequest, "query parameter q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	ctx := c.Request().Context()

	// Without Elasticsearch fall back to a plain catalog scan.
	if h.ES == nil {
		pattern := "%" + q + "%"
		var total int64
		if err := h.DB.Model(&models.Product{}).
			Where("name LIKE ? OR description LIKE ?", pattern, pattern).
			Count(&total).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
		var products []models.Product
		if err := h.DB.
			Where("name LIKE ? OR description LIKE ?", pattern, pattern).
			Order("id ASC").Offset(from).Limit(size).
			Find(&products).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
	}

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search error", "query", q, "error", err)
		return fail(c, http.StatusInternalServerError, "search is unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
