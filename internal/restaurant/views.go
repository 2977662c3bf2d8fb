package restaurant

import (
	"time"

	"github.com/danomnoms/server/internal/catalog"
	"github.com/danomnoms/server/internal/normalize"
)

// Restaurant is the client-facing restaurant shape with normalised fields.
type Restaurant struct {
	ID              string   `json:"_id"`
	StoreID         *string  `json:"store_id"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DeliveryFee     any      `json:"delivery_fee"`
	ETA             any      `json:"eta"`
	AverageRating   *float64 `json:"average_rating"`
	NumberOfRatings any      `json:"number_of_ratings"`
	PriceRange      any      `json:"price_range"`
	DistanceMiles   *float64 `json:"distance_miles"`
	Link            *string  `json:"link"`
	Address         *string  `json:"address"`
	OperatingHours  *string  `json:"operating_hours"`
	Items           []string `json:"items"`
}

type MenuItem struct {
	ID            string   `json:"_id"`
	StoreID       *string  `json:"store_id"`
	RestaurantID  *int     `json:"restaurant_id"`
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         any      `json:"price"`
	RatingPercent *float64 `json:"rating_percent"`
	ReviewCount   *int     `json:"review_count"`
	ImageURL      *string  `json:"image_url"`
}

type RestaurantList struct {
	Restaurants []Restaurant `json:"restaurants"`
	Total       int64        `json:"total"`
	Limit       int          `json:"limit"`
	Skip        int          `json:"skip"`
}

type Menu struct {
	RestaurantID   string     `json:"restaurant_id"`
	RestaurantName *string    `json:"restaurant_name"`
	Items          []MenuItem `json:"items"`
	TotalItems     int        `json:"total_items"`
}

type CartItemDetail struct {
	ItemID      string  `json:"item_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type Cart struct {
	RestaurantID   string           `json:"restaurant_id"`
	RestaurantName *string          `json:"restaurant_name"`
	Items          []CartItemDetail `json:"items"`
	Subtotal       float64          `json:"subtotal"`
	DeliveryFee    *float64         `json:"delivery_fee"`
	Total          float64          `json:"total"`
}

type CostEstimate struct {
	RestaurantID   string   `json:"restaurant_id"`
	RestaurantName *string  `json:"restaurant_name"`
	Subtotal       float64  `json:"subtotal"`
	DeliveryFee    *float64 `json:"delivery_fee"`
	EstimatedTotal float64  `json:"estimated_total"`
	EstimatedTax   *float64 `json:"estimated_tax"`
}

type Receipt struct {
	ReceiptID       string           `json:"receipt_id"`
	CreatedAt       time.Time        `json:"created_at"`
	RestaurantID    string           `json:"restaurant_id"`
	RestaurantName  *string          `json:"restaurant_name"`
	Items           []CartItemDetail `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	DeliveryFee     *float64         `json:"delivery_fee"`
	Tax             float64          `json:"tax"`
	Total           float64          `json:"total"`
	DeliveryID      *string          `json:"delivery_id,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	CustomerEmail   *string          `json:"customer_email,omitempty"`
	CustomerPhone   *string          `json:"customer_phone,omitempty"`
	DeliveryAddress *string          `json:"delivery_address,omitempty"`
}

func newRestaurant(r catalog.Restaurant) Restaurant {
	return Restaurant{
		ID:              r.ID,
		StoreID:         optional(r.StoreID),
		Name:            optional(r.Name),
		Description:     optional(r.Description),
		DeliveryFee:     normalize.DisplayDeliveryFee(r.DeliveryFee),
		ETA:             normalize.ETA(r.ETA),
		AverageRating:   normalize.Float(r.AverageRating),
		NumberOfRatings: normalize.RatingCount(r.NumberOfRatings),
		PriceRange:      normalize.PriceRange(r.PriceRange),
		DistanceMiles:   normalize.Float(r.DistanceMiles),
		Link:            optional(r.Link),
		Address:         optional(r.Address),
		OperatingHours:  optional(r.OperatingHours),
		Items:           r.Items,
	}
}

func newMenuItem(it catalog.MenuItem) MenuItem {
	return MenuItem{
		ID:            it.ID,
		StoreID:       optional(it.StoreID),
		RestaurantID:  normalize.Int(it.RestaurantID),
		Name:          optional(it.Name),
		Description:   optional(it.Description),
		Price:         normalize.DisplayPrice(it.Price),
		RatingPercent: normalize.Float(it.RatingPercent),
		ReviewCount:   normalize.Int(it.ReviewCount),
		ImageURL:      optional(it.ImageURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
