package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/01moynul/audiogear-golang/internal/middleware"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// buildCart joins the user's cart rows with current gear data and computes
// the total. A cart row whose gear item no longer exists is dropped from
// both the list and the total; it is not an error.
func (h *Handlers) buildCart(userID int64) (models.CartResponse, error) {
	cart := models.CartResponse{Items: []models.CartItemResponse{}}

	rows, err := h.DB.Query(`
		SELECT ci.id, ci.gear_item_id, ci.quantity,
		       g.id, g.name, g.category, g.brand, g.price, g.in_stock, g.rating, g.description, g.image_url
		FROM cart_items ci
		JOIN gear_items g ON g.id = ci.gear_item_id
		WHERE ci.user_id = ?
		ORDER BY ci.id`, userID)
	if err != nil {
		return cart, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item        models.CartItemResponse
			rating      sql.NullFloat64
			description sql.NullString
			imageURL    sql.NullString
		)
		err := rows.Scan(
			&item.ID, &item.GearItemID, &item.Quantity,
			&item.GearItem.ID, &item.GearItem.Name, &item.GearItem.Category, &item.GearItem.Brand,
			&item.GearItem.Price, &item.GearItem.InStock, &rating, &description, &imageURL,
		)
		if err != nil {
			return cart, err
		}
		if rating.Valid {
			item.GearItem.Rating = &rating.Float64
		}
		if description.Valid {
			item.GearItem.Description = &description.String
		}
		if imageURL.Valid {
			item.GearItem.ImageURL = &imageURL.String
		}

		cart.Total += item.GearItem.Price * float64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

func (h *Handlers) respondWithCart(c *gin.Context, userID int64) {
	cart, err := h.buildCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetCart is the handler for GET /api/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	h.respondWithCart(c, c.GetInt64(middleware.CtxUserID))
}

type AddCartItemInput struct {
	GearItemID int64 `json:"gear_item_id" binding:"required"`
	// Quantity defaults to 1 when omitted. Any integer is accepted; adding
	// to an existing row is pure addition, with no clamping here.
	Quantity *int `json:"quantity"`
}

// AddToCart is the handler for POST /api/cart. Adding an item already in
// the cart increments its quantity instead of creating a second row.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	var input AddCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	var gearID int64
	err = tx.QueryRow("SELECT id FROM gear_items WHERE id = ?", input.GearItemID).Scan(&gearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gear item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var (
		existingID       int64
		existingQuantity int
	)
	err = tx.QueryRow(
		"SELECT id, quantity FROM cart_items WHERE user_id = ? AND gear_item_id = ?",
		userID, input.GearItemID,
	).Scan(&existingID, &existingQuantity)
	switch {
	case err == nil:
		_, err = tx.Exec("UPDATE cart_items SET quantity = ? WHERE id = ?", existingQuantity+quantity, existingID)
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(
			"INSERT INTO cart_items (user_id, gear_item_id, quantity, created_at) VALUES (?, ?, ?, ?)",
			userID, input.GearItemID, quantity, time.Now(),
		)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	h.respondWithCart(c, userID)
}

type UpdateCartItemInput struct {
	// Pointer so an explicit zero survives binding; zero and below delete
	// the row.
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem is the handler for PATCH /api/cart/:id. The lookup is
// scoped to the caller's own rows, so a foreign cart item id reads as
// missing rather than forbidden.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)
	cartItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow(
		"SELECT id FROM cart_items WHERE id = ? AND user_id = ?", cartItemID, userID,
	).Scan(&existingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if *input.Quantity <= 0 {
		_, err = tx.Exec("DELETE FROM cart_items WHERE id = ?", existingID)
	} else {
		_, err = tx.Exec("UPDATE cart_items SET quantity = ? WHERE id = ?", *input.Quantity, existingID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	h.respondWithCart(c, userID)
}

// RemoveCartItem is the handler for DELETE /api/cart/:id, with the same
// ownership-scoped lookup as UpdateCartItem.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)
	cartItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM cart_items WHERE id = ? AND user_id = ?", cartItemID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	h.respondWithCart(c, userID)
}

// ClearCart is the handler for DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	if _, err := h.DB.Exec("DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, models.CartResponse{Items: []models.CartItemResponse{}, Total: 0})
}
