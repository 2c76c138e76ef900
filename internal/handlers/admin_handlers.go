package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/01moynul/audiogear-golang/internal/catalog"
	"github.com/01moynul/audiogear-golang/internal/middleware"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateGearItem is the handler for POST /api/gear.
func (h *Handlers) CreateGearItem(c *gin.Context) {
	var input models.GearItemCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	result, err := h.DB.Exec(
		`INSERT INTO gear_items (name, category, brand, price, in_stock, rating, description, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Category, input.Brand, input.Price, inStock,
		input.Rating, input.Description, input.ImageURL, time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert gear item"})
		return
	}
	itemID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ID"})
		return
	}

	c.JSON(http.StatusCreated, models.GearItem{
		ID:          itemID,
		Name:        input.Name,
		Category:    input.Category,
		Brand:       input.Brand,
		Price:       input.Price,
		InStock:     inStock,
		Rating:      input.Rating,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
}

// UpdateGearItem is the handler for PATCH /api/gear/:id. The SET clause is
// built from the fields present in the patch; absent fields stay as they
// are.
func (h *Handlers) UpdateGearItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var input models.GearItemPatch
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var existingID int64
	err = h.DB.QueryRow("SELECT id FROM gear_items WHERE id = ?", itemID).Scan(&existingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	querySet := ""
	var queryArgs []interface{}
	addSet := func(column string, value interface{}) {
		if querySet != "" {
			querySet += ", "
		}
		querySet += column + " = ?"
		queryArgs = append(queryArgs, value)
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Category != nil {
		addSet("category", *input.Category)
	}
	if input.Brand != nil {
		addSet("brand", *input.Brand)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.InStock != nil {
		addSet("in_stock", *input.InStock)
	}
	if input.Rating != nil {
		addSet("rating", *input.Rating)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.ImageURL != nil {
		addSet("image_url", *input.ImageURL)
	}

	if querySet != "" {
		queryArgs = append(queryArgs, itemID)
		_, err = h.DB.Exec("UPDATE gear_items SET "+querySet+" WHERE id = ?", queryArgs...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gear item"})
			return
		}
	}

	row := h.DB.QueryRow(
		"SELECT id, name, category, brand, price, in_stock, rating, description, image_url FROM gear_items WHERE id = ?",
		itemID,
	)
	item, err := scanGearItem(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload gear item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteGearItem is the handler for DELETE /api/gear/:id. Cart rows
// referencing the item are left in place; cart reads skip them.
func (h *Handlers) DeleteGearItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM gear_items WHERE id = ?", itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gear item"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

type ListUsersQuery struct {
	Q        string `form:"q"`
	Sort     string `form:"sort"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
	PageSize int    `form:"page_size,default=20" binding:"gte=1,lte=1000"`
}

// AdminListUsers is the handler for GET /api/admin/users. Same pagination
// contract as the catalog listing.
func (h *Handlers) AdminListUsers(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters"})
		return
	}

	params := catalog.ListParams{Search: q.Q, Sort: q.Sort, Page: q.Page, PageSize: q.PageSize}
	countSQL, countArgs, listSQL, listArgs := catalog.BuildUserQueries(params)

	var total int
	if err := h.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	page, pages, offset := catalog.Paginate(total, q.Page, q.PageSize)
	listArgs = append(listArgs, q.PageSize, offset)

	rows, err := h.DB.Query(listSQL, listArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	users := []models.UserInfo{}
	for rows.Next() {
		var u models.UserInfo
		if err := rows.Scan(&u.ID, &u.Username, &u.IsAdmin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user row"})
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     users,
		"total":     total,
		"page":      page,
		"page_size": q.PageSize,
		"pages":     pages,
	})
}

// AdminDeleteUser is the handler for DELETE /api/admin/users/:id. The
// caller's own account and the seeded "admin" account are protected; the
// target's cart rows go with it in one transaction.
func (h *Handlers) AdminDeleteUser(c *gin.Context) {
	requesterID := c.GetInt64(middleware.CtxUserID)
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var target models.User
	err = h.DB.QueryRow(
		"SELECT id, username, is_admin FROM users WHERE id = ?", targetID,
	).Scan(&target.ID, &target.Username, &target.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if target.ID == requesterID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete your own account"})
		return
	}
	if target.Username == "admin" && target.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete the default admin account"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cart_items WHERE user_id = ?", target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user cart"})
		return
	}
	if _, err := tx.Exec("DELETE FROM users WHERE id = ?", target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.Status(http.StatusNoContent)
}
