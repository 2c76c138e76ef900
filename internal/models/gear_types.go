package models

import "time"

// Categories is the fixed catalog taxonomy. The API never grows this at
// runtime; invalid values are rejected at the binding layer.
var Categories = []string{"microphone", "headphones", "interface"}

// GearItem is a catalog entry. Optional columns map to pointers so the
// JSON comes out as null rather than zero values.
type GearItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Brand       string    `json:"brand" db:"brand"`
	Price       float64   `json:"price" db:"price"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	Rating      *float64  `json:"rating" db:"rating"`
	Description *string   `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

// GearItemCreate is the admin create payload.
type GearItemCreate struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required,oneof=microphone headphones interface"`
	Brand       string   `json:"brand" binding:"required"`
	Price       float64  `json:"price" binding:"gte=0"`
	InStock     *bool    `json:"in_stock"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

// GearItemPatch is the admin partial update. Only fields present in the
// JSON are applied; nil pointers leave the column untouched.
type GearItemPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category" binding:"omitempty,oneof=microphone headphones interface"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	InStock     *bool    `json:"in_stock"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}
