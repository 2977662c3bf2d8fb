package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/delivery"
	"github.com/danomnoms/server/internal/metrics"
	"github.com/danomnoms/server/internal/restaurant"
	logx "github.com/danomnoms/server/pkg/logger"
)

const (
	DefaultListLimit      = 10
	MaxListLimit          = 50
	MaxListRows           = 10
	MaxMenuItems          = 20
	DefaultResultMaxChars = 5000

	TruncationMarker = "\n\n[Content truncated due to length...]"
	ErrorSuggestion  = "Please try again. If this is the first request after inactivity, the server may be waking up (can take 50+ seconds on free tier)."
)

// RestaurantService is the catalog and ordering surface the tools dispatch to.
type RestaurantService interface {
	ListRestaurants(ctx context.Context, limit, skip int) (*restaurant.RestaurantList, error)
	GetMenu(ctx context.Context, restaurantID string) (*restaurant.Menu, error)
	GetMenuItem(ctx context.Context, itemID string) (*restaurant.MenuItem, error)
	BuildCart(ctx context.Context, req restaurant.CartRequest) (*restaurant.Cart, error)
	CostEstimate(ctx context.Context, req restaurant.CartRequest) (*restaurant.CostEstimate, error)
	CreateReceipt(ctx context.Context, req restaurant.ReceiptRequest) (*restaurant.Receipt, error)
}

type DeliveryService interface {
	CreateDelivery(ctx context.Context, req delivery.CreateRequest) (*delivery.Delivery, error)
	TrackDelivery(ctx context.Context, externalDeliveryID string) (*delivery.Delivery, error)
}

// ErrorPayload is what the model sees when a tool fails.
type ErrorPayload struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	ErrorType  string `json:"error_type"`
	Suggestion string `json:"suggestion"`
}

// Executor runs tool calls against the restaurant and delivery services. It never
// returns an error: failures are folded into an ErrorPayload for the model.
type Executor struct {
	restaurants RestaurantService
	deliveries  DeliveryService
	maxChars    int
}

func NewExecutor(restaurants RestaurantService, deliveries DeliveryService, maxChars int) *Executor {
	if maxChars <= 0 {
		maxChars = DefaultResultMaxChars
	}
	return &Executor{restaurants: restaurants, deliveries: deliveries, maxChars: maxChars}
}

// Execute decodes, dispatches and serialises one tool call. Tool callbacks fire when the
// context carries handlers.
func (e *Executor) Execute(ctx context.Context, name, arguments string) string {
	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      name,
		Type:      "DaNomNoms",
		Component: components.ComponentOfTool,
	})
	ctx = callbacks.OnStart(ctx, &tool.CallbackInput{ArgumentsInJSON: arguments})

	result, err := e.dispatch(ctx, name, arguments)
	var content string
	if err != nil {
		callbacks.OnError(ctx, err)
		content = e.errorContent(name, err)
	} else {
		content = e.successContent(name, result)
	}
	metrics.RecordToolCall(name, err == nil)

	callbacks.OnEnd(ctx, &tool.CallbackOutput{Response: content})
	return content
}

func (e *Executor) dispatch(ctx context.Context, name, arguments string) (any, error) {
	call, err := Decode(name, arguments)
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("tool", name).Str("args", describeArgs(call)).Msg("executing tool")

	switch c := call.(type) {
	case *ListRestaurants:
		return e.listRestaurants(ctx, c)
	case *GetRestaurantMenu:
		return e.restaurantMenu(ctx, c)
	case *GetMenuItem:
		return e.restaurants.GetMenuItem(ctx, c.ItemID)
	case *BuildCart:
		return e.restaurants.BuildCart(ctx, c.CartRequest)
	case *ComputeCostEstimate:
		return e.restaurants.CostEstimate(ctx, c.CartRequest)
	case *CreateReceipt:
		return e.restaurants.CreateReceipt(ctx, c.ReceiptRequest)
	case *CreateDelivery:
		if e.deliveries == nil {
			return nil, errx.Config("Delivery provider is not configured")
		}
		return e.deliveries.CreateDelivery(ctx, c.CreateRequest)
	case *TrackDelivery:
		if e.deliveries == nil {
			return nil, errx.Config("Delivery provider is not configured")
		}
		return e.deliveries.TrackDelivery(ctx, c.ExternalDeliveryID)
	default:
		return nil, errx.Validation(fmt.Sprintf("Unknown function: %s", name))
	}
}

func (e *Executor) listRestaurants(ctx context.Context, c *ListRestaurants) (*restaurant.RestaurantList, error) {
	limit := DefaultListLimit
	if c.Limit != nil {
		limit = *c.Limit
	}
	limit = clampInt(limit, 1, MaxListLimit)
	skip := 0
	if c.Skip != nil {
		skip = *c.Skip
	}

	list, err := e.restaurants.ListRestaurants(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	out := *list
	if len(out.Restaurants) > MaxListRows {
		out.Restaurants = out.Restaurants[:MaxListRows]
		out.Total = min(out.Total, MaxListRows)
	}
	return &out, nil
}

func (e *Executor) restaurantMenu(ctx context.Context, c *GetRestaurantMenu) (*restaurant.Menu, error) {
	menu, err := e.restaurants.GetMenu(ctx, c.RestaurantID)
	if err != nil {
		return nil, err
	}
	out := *menu
	if len(out.Items) > MaxMenuItems {
		out.Items = out.Items[:MaxMenuItems]
		out.TotalItems = min(out.TotalItems, MaxMenuItems)
	}
	return &out, nil
}

func (e *Executor) successContent(name string, result any) string {
	b, err := json.Marshal(result)
	if err != nil {
		return e.errorContent(name, errx.Unexpected(err, fmt.Sprintf("failed to encode %s result: %v", name, err)))
	}
	return truncate(string(b), e.maxChars)
}

func (e *Executor) errorContent(name string, err error) string {
	ae := errx.As(err)
	logx.Warn().
		Str("tool", name).
		Str("error_type", string(ae.Kind)).
		Int("status", ae.Status).
		Msg(ae.Message)

	b, mErr := json.Marshal(ErrorPayload{
		Success:    false,
		Error:      ae.Message,
		ErrorType:  string(ae.Kind),
		Suggestion: ErrorSuggestion,
	})
	if mErr != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, ae.Message)
	}
	return truncate(string(b), e.maxChars)
}

func truncate(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars]) + TruncationMarker
}
