package model

// CartItem is one food item in a user's cart.
type CartItem struct {
	FoodID   string `json:"food_id"`
	Quantity int    `json:"quantity"`
}
