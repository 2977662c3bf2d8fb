package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/core/validate"
	"github.com/danomnoms/server/internal/delivery"
	"github.com/danomnoms/server/internal/restaurant"
)

// Call is a decoded, typed tool invocation.
type Call interface {
	ToolName() string
	Validate() error
}

type ListRestaurants struct {
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=1"`
	Skip  *int `json:"skip,omitempty" validate:"omitempty,min=0"`
}

func (ListRestaurants) ToolName() string { return ToolListRestaurants }

func (c ListRestaurants) Validate() error { return validate.Struct(c) }

type GetRestaurantMenu struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
}

func (GetRestaurantMenu) ToolName() string { return ToolGetRestaurantMenu }

func (c GetRestaurantMenu) Validate() error { return validate.Struct(c) }

type GetMenuItem struct {
	ItemID string `json:"item_id" validate:"required"`
}

func (GetMenuItem) ToolName() string { return ToolGetMenuItem }

func (c GetMenuItem) Validate() error { return validate.Struct(c) }

type BuildCart struct {
	restaurant.CartRequest
}

func (BuildCart) ToolName() string { return ToolBuildCart }

type ComputeCostEstimate struct {
	restaurant.CartRequest
}

func (ComputeCostEstimate) ToolName() string { return ToolComputeCostEstimate }

type CreateReceipt struct {
	restaurant.ReceiptRequest
}

func (CreateReceipt) ToolName() string { return ToolCreateReceipt }

type CreateDelivery struct {
	delivery.CreateRequest
}

func (CreateDelivery) ToolName() string { return ToolCreateDelivery }

type TrackDelivery struct {
	ExternalDeliveryID string `json:"external_delivery_id" validate:"required"`
}

func (TrackDelivery) ToolName() string { return ToolTrackDelivery }

func (c TrackDelivery) Validate() error { return validate.Struct(c) }

// Decode turns a model-issued tool call into its typed variant and validates it.
// Unknown names and malformed arguments come back as validation errors.
func Decode(name, arguments string) (Call, error) {
	var call Call
	switch name {
	case ToolListRestaurants:
		call = &ListRestaurants{}
	case ToolGetRestaurantMenu:
		call = &GetRestaurantMenu{}
	case ToolGetMenuItem:
		call = &GetMenuItem{}
	case ToolBuildCart:
		call = &BuildCart{}
	case ToolComputeCostEstimate:
		call = &ComputeCostEstimate{}
	case ToolCreateReceipt:
		call = &CreateReceipt{}
	case ToolCreateDelivery:
		call = &CreateDelivery{}
	case ToolTrackDelivery:
		call = &TrackDelivery{}
	default:
		return nil, errx.Validation(fmt.Sprintf("Unknown function: %s", name))
	}

	args := sanitizeArguments(name, arguments)
	if err := json.Unmarshal([]byte(args), call); err != nil {
		return nil, errx.New(errx.KindValidation, err, http.StatusBadRequest, fmt.Sprintf("Invalid request parameters: %v", err))
	}
	if err := call.Validate(); err != nil {
		ae := errx.As(err)
		return nil, errx.New(errx.KindValidation, err, http.StatusBadRequest, "Invalid request parameters: "+ae.Message)
	}
	return call, nil
}

func emptyArguments(arguments string) bool {
	s := strings.TrimSpace(arguments)
	return s == "" || s == "null"
}
