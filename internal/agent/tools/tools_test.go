package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/delivery"
	"github.com/danomnoms/server/internal/restaurant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestaurants struct {
	list      *restaurant.RestaurantList
	menu      *restaurant.Menu
	err       error
	gotLimit  int
	gotSkip   int
	cartCalls int
}

func (f *fakeRestaurants) ListRestaurants(_ context.Context, limit, skip int) (*restaurant.RestaurantList, error) {
	f.gotLimit, f.gotSkip = limit, skip
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeRestaurants) GetMenu(context.Context, string) (*restaurant.Menu, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.menu, nil
}

func (f *fakeRestaurants) GetMenuItem(context.Context, string) (*restaurant.MenuItem, error) {
	return nil, errx.NotFound(restaurant.MsgItemNotFound)
}

func (f *fakeRestaurants) BuildCart(_ context.Context, req restaurant.CartRequest) (*restaurant.Cart, error) {
	f.cartCalls++
	return &restaurant.Cart{RestaurantID: req.RestaurantID}, nil
}

func (f *fakeRestaurants) CostEstimate(context.Context, restaurant.CartRequest) (*restaurant.CostEstimate, error) {
	return &restaurant.CostEstimate{}, nil
}

func (f *fakeRestaurants) CreateReceipt(context.Context, restaurant.ReceiptRequest) (*restaurant.Receipt, error) {
	return &restaurant.Receipt{ReceiptID: "rcpt_1"}, nil
}

type fakeDeliveries struct {
	err error
}

func (f *fakeDeliveries) CreateDelivery(context.Context, delivery.CreateRequest) (*delivery.Delivery, error) {
	return nil, f.err
}

func (f *fakeDeliveries) TrackDelivery(context.Context, string) (*delivery.Delivery, error) {
	return nil, f.err
}

func restaurants(n int) []restaurant.Restaurant {
	out := make([]restaurant.Restaurant, n)
	for i := range out {
		out[i] = restaurant.Restaurant{ID: fmt.Sprintf("r%02d", i)}
	}
	return out
}

func decodeError(t *testing.T, content string) ErrorPayload {
	t.Helper()
	var p ErrorPayload
	require.NoError(t, json.Unmarshal([]byte(content), &p))
	assert.False(t, p.Success)
	assert.Equal(t, ErrorSuggestion, p.Suggestion)
	return p
}

func TestInfosCoverEveryTool(t *testing.T) {
	assert.Equal(t, []string{
		"list_restaurants", "get_restaurant_menu", "get_menu_item", "build_cart",
		"compute_cost_estimate", "create_receipt", "create_delivery", "track_delivery",
	}, Names())
	for _, info := range Infos() {
		assert.NotEmpty(t, info.Desc, info.Name)
		assert.NotNil(t, info.ParamsOneOf, info.Name)
	}
}

func TestDecode(t *testing.T) {
	call, err := Decode(ToolBuildCart, `{"restaurant_id":" abc ","items":[{"item_id":"i1","quantity":"2"}]}`)
	require.NoError(t, err)
	cart := call.(*BuildCart)
	assert.Equal(t, "abc", cart.RestaurantID)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	call, err = Decode(ToolListRestaurants, "")
	require.NoError(t, err)
	assert.Nil(t, call.(*ListRestaurants).Limit)

	call, err = Decode(ToolCreateReceipt, `{"restaurant_id":"r","items":[{"item_id":"i","quantity":1}],"customer_name":"Ana"}`)
	require.NoError(t, err)
	assert.Equal(t, "Ana", call.(*CreateReceipt).CustomerName)
}

func TestDecodeRejectsBadArguments(t *testing.T) {
	_, err := Decode(ToolBuildCart, `{"restaurant_id":"r","items":[{"item_id":"i","quantity":0}]}`)
	require.Error(t, err)
	ae := errx.As(err)
	assert.Equal(t, errx.KindValidation, ae.Kind)
	assert.Equal(t, "Invalid request parameters: items[0].quantity must be at least 1", ae.Message)

	_, err = Decode(ToolCreateReceipt, `{"restaurant_id":"r","items":[{"item_id":"i","quantity":0}]}`)
	assert.Contains(t, errx.As(err).Message, "items[0].quantity must be at least 1")

	_, err = Decode(ToolGetMenuItem, `{not json`)
	assert.True(t, errx.IsKind(err, errx.KindValidation))

	_, err = Decode("order_pizza", `{}`)
	assert.Equal(t, "Unknown function: order_pizza", errx.As(err).Message)
}

func TestSanitizeArguments(t *testing.T) {
	got := sanitizeArguments(ToolListRestaurants, `{"limit":"5","skip":2.0,"extra":null}`)
	assert.JSONEq(t, `{"limit":5,"skip":2}`, got)

	got = sanitizeArguments(ToolGetMenuItem, `{"item_id":42}`)
	assert.JSONEq(t, `{"item_id":"42"}`, got)

	assert.Equal(t, "{}", sanitizeArguments(ToolListRestaurants, " null "))
	assert.Equal(t, "oops", sanitizeArguments(ToolListRestaurants, "oops"))
}

func TestExecuteListRestaurantsShapesPayload(t *testing.T) {
	svc := &fakeRestaurants{list: &restaurant.RestaurantList{Restaurants: restaurants(30), Total: 120, Limit: 50}}
	ex := NewExecutor(svc, nil, 0)

	content := ex.Execute(context.Background(), ToolListRestaurants, `{"limit":500,"skip":3}`)
	assert.Equal(t, MaxListLimit, svc.gotLimit)
	assert.Equal(t, 3, svc.gotSkip)

	var got restaurant.RestaurantList
	require.NoError(t, json.Unmarshal([]byte(content), &got))
	assert.Len(t, got.Restaurants, MaxListRows)
	assert.EqualValues(t, MaxListRows, got.Total)
	assert.Len(t, svc.list.Restaurants, 30, "service result is not mutated")

	ex.Execute(context.Background(), ToolListRestaurants, `{}`)
	assert.Equal(t, DefaultListLimit, svc.gotLimit)
}

func TestExecuteListRestaurantsRejectsOutOfRangeLimit(t *testing.T) {
	ex := NewExecutor(&fakeRestaurants{}, nil, 0)
	p := decodeError(t, ex.Execute(context.Background(), ToolListRestaurants, `{"limit":0}`))
	assert.Equal(t, string(errx.KindValidation), p.ErrorType)
}

func TestExecuteMenuCapsItems(t *testing.T) {
	items := make([]restaurant.MenuItem, 35)
	svc := &fakeRestaurants{menu: &restaurant.Menu{RestaurantID: "r", Items: items, TotalItems: 35}}
	ex := NewExecutor(svc, nil, 100000)

	var got restaurant.Menu
	require.NoError(t, json.Unmarshal([]byte(ex.Execute(context.Background(), ToolGetRestaurantMenu, `{"restaurant_id":"r"}`)), &got))
	assert.Len(t, got.Items, MaxMenuItems)
	assert.Equal(t, MaxMenuItems, got.TotalItems)
}

func TestExecuteFoldsErrorsIntoPayload(t *testing.T) {
	ex := NewExecutor(&fakeRestaurants{}, &fakeDeliveries{err: errx.Upstream(nil, 503, "DoorDash API error: down")}, 0)
	ctx := context.Background()

	p := decodeError(t, ex.Execute(ctx, ToolGetMenuItem, `{"item_id":"x"}`))
	assert.Equal(t, restaurant.MsgItemNotFound, p.Error)
	assert.Equal(t, string(errx.KindNotFound), p.ErrorType)

	p = decodeError(t, ex.Execute(ctx, ToolTrackDelivery, `{"external_delivery_id":"D-1"}`))
	assert.Equal(t, "DoorDash API error: down", p.Error)
	assert.Equal(t, string(errx.KindUpstream), p.ErrorType)

	p = decodeError(t, ex.Execute(ctx, "launch_rocket", `{}`))
	assert.Equal(t, "Unknown function: launch_rocket", p.Error)

	noDelivery := NewExecutor(&fakeRestaurants{}, nil, 0)
	p = decodeError(t, noDelivery.Execute(ctx, ToolTrackDelivery, `{"external_delivery_id":"D-1"}`))
	assert.Equal(t, string(errx.KindConfig), p.ErrorType)
}

func TestExecuteValidatesBeforeDispatch(t *testing.T) {
	svc := &fakeRestaurants{}
	ex := NewExecutor(svc, nil, 0)

	p := decodeError(t, ex.Execute(context.Background(), ToolBuildCart, `{"restaurant_id":"r","items":[{"item_id":"i","quantity":0}]}`))
	assert.Contains(t, p.Error, "quantity must be at least 1")
	assert.Zero(t, svc.cartCalls)

	ex.Execute(context.Background(), ToolBuildCart, `{"restaurant_id":"r","items":[{"item_id":"i","quantity":1}]}`)
	assert.Equal(t, 1, svc.cartCalls)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("é", 12)
	got := truncate(long, 10)
	assert.True(t, strings.HasSuffix(got, TruncationMarker))
	assert.Equal(t, 10, utf8.RuneCountInString(strings.TrimSuffix(got, TruncationMarker)))

	ex := NewExecutor(&fakeRestaurants{list: &restaurant.RestaurantList{Restaurants: restaurants(10)}}, nil, 40)
	assert.True(t, strings.HasSuffix(ex.Execute(context.Background(), ToolListRestaurants, `{}`), TruncationMarker))
}
