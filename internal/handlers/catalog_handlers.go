package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/audiogear-golang/internal/catalog"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// ListGearQuery binds the shared listing parameters. Sort keys are not
// validated here; unknown keys fall back to the audience default. PageSize
// is a pointer so an explicit page_size=0 is rejected rather than treated
// as absent.
type ListGearQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=microphone headphones interface"`
	Q        string `form:"q"`
	Sort     string `form:"sort"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
	PageSize *int   `form:"page_size" binding:"omitempty,gte=1,lte=1000"`
}

// GetCategories is the handler for GET /api/categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories)
}

// ListGear is the handler for GET /api/gear, the public catalog listing.
func (h *Handlers) ListGear(c *gin.Context) {
	h.listGear(c, false, 12)
}

// AdminListGear is the handler for GET /api/admin/gear. Same contract as
// the public listing, with the admin sort keys and defaults.
func (h *Handlers) AdminListGear(c *gin.Context) {
	h.listGear(c, true, 20)
}

func (h *Handlers) listGear(c *gin.Context, admin bool, defaultPageSize int) {
	var q ListGearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters"})
		return
	}
	pageSize := defaultPageSize
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}

	params := catalog.ListParams{
		Category: q.Category,
		Search:   q.Q,
		Sort:     q.Sort,
		Page:     q.Page,
		PageSize: pageSize,
	}
	countSQL, countArgs, listSQL, listArgs := catalog.BuildGearQueries(params, admin)

	var total int
	if err := h.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	page, pages, offset := catalog.Paginate(total, q.Page, pageSize)
	listArgs = append(listArgs, pageSize, offset)

	rows, err := h.DB.Query(listSQL, listArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	items := []models.GearItem{}
	for rows.Next() {
		item, err := scanGearItem(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan gear item"})
			return
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating gear items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"pages":     pages,
	})
}

// GetGearItem is the handler for GET /api/gear/:id.
func (h *Handlers) GetGearItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	row := h.DB.QueryRow(
		"SELECT id, name, category, brand, price, in_stock, rating, description, image_url FROM gear_items WHERE id = ?",
		itemID,
	)
	item, err := scanGearItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, item)
}
