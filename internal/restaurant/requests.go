package restaurant

import "github.com/danomnoms/server/internal/core/validate"

// CartItem is one requested line.
type CartItem struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// CartRequest backs both the cart and the cost estimate.
type CartRequest struct {
	RestaurantID string     `json:"restaurant_id" validate:"required"`
	Items        []CartItem `json:"items" validate:"required,min=1,dive"`
}

func (r CartRequest) Validate() error {
	return validate.Struct(r)
}

// ReceiptRequest prices an order and attaches optional delivery and customer details.
type ReceiptRequest struct {
	CartRequest
	DeliveryID      string `json:"delivery_id,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

func (r ReceiptRequest) Validate() error {
	return validate.Struct(r)
}
