package models

// CartItemResponse is a cart row joined with its current gear data. At
// most one row exists per (user, gear item) pair; adding the same item
// again merges into the existing row.
type CartItemResponse struct {
	ID         int64    `json:"id"`
	GearItemID int64    `json:"gear_item_id"`
	Quantity   int      `json:"quantity"`
	GearItem   GearItem `json:"gear_item"`
}

// CartResponse is the full cart view returned by every cart mutation.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}
