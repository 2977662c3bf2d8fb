package validate

import (
	"testing"

	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Line struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type Order struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Items        []Line `json:"items" validate:"min=1,dive"`
}

type NamedOrder struct {
	Order
	Name string `json:"name" validate:"max=5"`
}

func TestStructMessagesUseJSONPaths(t *testing.T) {
	err := Struct(Order{Items: []Line{{ItemID: "a", Quantity: 0}}})
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindValidation))
	msg := errx.As(err).Message
	assert.Contains(t, msg, "restaurant_id is required")
	assert.Contains(t, msg, "items[0].quantity must be at least 1")
}

func TestStructEmptySlice(t *testing.T) {
	err := Struct(Order{RestaurantID: "r"})
	assert.Equal(t, "items must contain at least 1 item(s)", errx.As(err).Message)
}

func TestStructEmbeddedFields(t *testing.T) {
	err := Struct(NamedOrder{Order: Order{RestaurantID: "r", Items: []Line{{ItemID: "a", Quantity: 1}}}, Name: "toolong"})
	assert.Equal(t, "name must be at most 5", errx.As(err).Message)

	assert.NoError(t, Struct(NamedOrder{Order: Order{RestaurantID: "r", Items: []Line{{ItemID: "a", Quantity: 1}}}}))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].quantity", fieldPath("ReceiptRequest.CartRequest.items[0].quantity"))
	assert.Equal(t, "limit", fieldPath("ListRestaurants.limit"))
}
