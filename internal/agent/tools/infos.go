package tools

import (
	"github.com/cloudwego/eino/schema"
)

const (
	ToolListRestaurants     = "list_restaurants"
	ToolGetRestaurantMenu   = "get_restaurant_menu"
	ToolGetMenuItem         = "get_menu_item"
	ToolBuildCart           = "build_cart"
	ToolComputeCostEstimate = "compute_cost_estimate"
	ToolCreateReceipt       = "create_receipt"
	ToolCreateDelivery      = "create_delivery"
	ToolTrackDelivery       = "track_delivery"
)

func restaurantIDParam() *schema.ParameterInfo {
	return &schema.ParameterInfo{Type: schema.String, Desc: "MongoDB _id of the restaurant", Required: true}
}

func cartItemsParam(desc string) *schema.ParameterInfo {
	return &schema.ParameterInfo{
		Type:     schema.Array,
		Desc:     desc,
		Required: true,
		ElemInfo: &schema.ParameterInfo{
			Type: schema.Object,
			SubParams: map[string]*schema.ParameterInfo{
				"item_id":  {Type: schema.String, Desc: "MongoDB _id of the menu item", Required: true},
				"quantity": {Type: schema.Integer, Desc: "Quantity of the item (minimum 1)", Required: true},
			},
		},
	}
}

func optionalString(desc string) *schema.ParameterInfo {
	return &schema.ParameterInfo{Type: schema.String, Desc: desc}
}

func requiredString(desc string) *schema.ParameterInfo {
	return &schema.ParameterInfo{Type: schema.String, Desc: desc, Required: true}
}

// Infos returns the fixed tool menu offered to the model on every round.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolListRestaurants,
			Desc: "List all restaurants with pagination. Use this to browse available restaurants, filter by limit and skip for pagination.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"limit": {Type: schema.Integer, Desc: "Maximum number of restaurants to return (1-1000, default: 100)"},
				"skip":  {Type: schema.Integer, Desc: "Number of restaurants to skip for pagination (default: 0)"},
			}),
		},
		{
			Name: ToolGetRestaurantMenu,
			Desc: "Get menu items for a specific restaurant. Use the restaurant_id from list_restaurants.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"restaurant_id": restaurantIDParam(),
			}),
		},
		{
			Name: ToolGetMenuItem,
			Desc: "Get details of a specific menu item by its ID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id": requiredString("MongoDB _id of the menu item"),
			}),
		},
		{
			Name: ToolBuildCart,
			Desc: "Build a shopping cart with items from a restaurant. Use this to add items to a cart before checkout.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"restaurant_id": restaurantIDParam(),
				"items":         cartItemsParam("List of items to add to cart"),
			}),
		},
		{
			Name: ToolComputeCostEstimate,
			Desc: "Compute cost estimate for a cart without building the full cart. Use this to get pricing information before building the cart.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"restaurant_id": restaurantIDParam(),
				"items":         cartItemsParam("List of items in cart"),
			}),
		},
		{
			Name: ToolCreateReceipt,
			Desc: "Create a receipt for a completed order. Use this to finalize an order after building a cart.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"restaurant_id":    restaurantIDParam(),
				"items":            cartItemsParam("List of items in the order"),
				"delivery_id":      optionalString("Optional DoorDash delivery external_delivery_id if linked to a delivery"),
				"customer_name":    optionalString("Customer name"),
				"customer_email":   optionalString("Customer email"),
				"customer_phone":   optionalString("Customer phone number"),
				"delivery_address": optionalString("Delivery address"),
			}),
		},
		{
			Name: ToolCreateDelivery,
			Desc: "Create a new DoorDash delivery. Use this to set up delivery for an order.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"external_delivery_id":        requiredString("Unique identifier for the delivery"),
				"pickup_address":              requiredString("Pickup address"),
				"pickup_business_name":        requiredString("Business name for pickup location"),
				"pickup_phone_number":         requiredString("Phone number for pickup location"),
				"dropoff_address":             requiredString("Dropoff address"),
				"dropoff_phone_number":        requiredString("Phone number for dropoff location"),
				"pickup_instructions":         optionalString("Special instructions for pickup"),
				"pickup_reference_tag":        optionalString("Reference tag for pickup"),
				"dropoff_business_name":       optionalString("Business name for dropoff location"),
				"dropoff_instructions":        optionalString("Special instructions for dropoff"),
				"dropoff_contact_given_name":  optionalString("Contact first name"),
				"dropoff_contact_family_name": optionalString("Contact last name"),
				"order_value":                 {Type: schema.Integer, Desc: "Order value in cents"},
				"tip":                         {Type: schema.Integer, Desc: "Tip for the Dasher in cents"},
				"currency":                    optionalString("ISO currency code, e.g. USD"),
			}),
		},
		{
			Name: ToolTrackDelivery,
			Desc: "Get the status of a DoorDash delivery by external delivery ID. Use this to check delivery status after creating a delivery.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"external_delivery_id": requiredString("The external delivery ID used when creating the delivery"),
			}),
		},
	}
}

// Names lists the tool menu in declaration order.
func Names() []string {
	infos := Infos()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
