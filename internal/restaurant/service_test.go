package restaurant

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danomnoms/server/internal/catalog"
	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	restID   = "64b000000000000000000001"
	freeID   = "64b000000000000000000002"
	burgerID = "64c000000000000000000001"
	friesID  = "64c000000000000000000002"
	soupID   = "64c000000000000000000003"
)

func newTestService(opts ...Option) *Service {
	repo := catalog.NewMemoryRepository(
		[]catalog.Restaurant{
			{
				ID: restID, StoreID: "s-1", Name: "Burger Barn",
				DeliveryFee: "$2.99", ETA: "1.2 mi • 25 min", NumberOfRatings: "(3k+)", PriceRange: 2,
				AverageRating: 4.6, Items: []string{burgerID, friesID},
			},
			{ID: freeID, StoreID: "s-2", Name: "Soup Stop", DeliveryFee: "Free delivery"},
		},
		[]catalog.MenuItem{
			{ID: burgerID, StoreID: "s-1", Name: "Burger", Price: "$12.99"},
			{ID: friesID, StoreID: "s-1", Name: "Fries", Price: 5},
			{ID: soupID, StoreID: "s-2", Name: "Soup", Price: "Market price"},
		},
	)
	return NewService(repo, opts...)
}

func cartReq(restaurantID string, lines ...CartItem) CartRequest {
	return CartRequest{RestaurantID: restaurantID, Items: lines}
}

func TestBuildCart(t *testing.T) {
	svc := newTestService()

	cart, err := svc.BuildCart(context.Background(), cartReq(restID,
		CartItem{ItemID: burgerID, Quantity: 2},
		CartItem{ItemID: friesID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, "Burger Barn", *cart.RestaurantName)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 12.99, cart.Items[0].Price)
	assert.InDelta(t, 25.98, cart.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 30.98, cart.Subtotal, 1e-9)
	require.NotNil(t, cart.DeliveryFee)
	assert.Equal(t, 2.99, *cart.DeliveryFee)
	assert.InDelta(t, 33.97, cart.Total, 1e-9)
}

func TestCostEstimate(t *testing.T) {
	svc := newTestService()

	est, err := svc.CostEstimate(context.Background(), cartReq(restID,
		CartItem{ItemID: burgerID, Quantity: 2},
		CartItem{ItemID: friesID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.InDelta(t, 30.98, est.Subtotal, 1e-9)
	require.NotNil(t, est.EstimatedTax)
	assert.InDelta(t, 2.63, *est.EstimatedTax, 1e-9)
	assert.InDelta(t, 36.60, est.EstimatedTotal, 1e-9)
}

func TestZeroFeeIsOmittedAndUnparseablePriceIsZero(t *testing.T) {
	svc := newTestService()

	cart, err := svc.BuildCart(context.Background(), cartReq(freeID, CartItem{ItemID: soupID, Quantity: 3}))
	require.NoError(t, err)
	assert.Nil(t, cart.DeliveryFee)
	assert.Equal(t, 0.0, cart.Subtotal)
	assert.Equal(t, 0.0, cart.Total)
}

func TestPricingErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.BuildCart(ctx, cartReq("64b0000000000000000000ff", CartItem{ItemID: burgerID, Quantity: 1}))
	require.Error(t, err)
	ae := errx.As(err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, MsgRestaurantNotFound, ae.Message)

	_, err = svc.CostEstimate(ctx, cartReq(restID, CartItem{ItemID: "64c0000000000000000000ff", Quantity: 1}))
	ae = errx.As(err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, MsgItemsInvalid, ae.Message)

	_, err = svc.BuildCart(ctx, cartReq(restID,
		CartItem{ItemID: burgerID, Quantity: 1},
		CartItem{ItemID: burgerID, Quantity: 1},
	))
	ae = errx.As(err)
	assert.Equal(t, MsgItemsInvalid, ae.Message, "duplicate ids collapse in the batch lookup")

	upper := strings.ToUpper(burgerID)
	_, err = svc.BuildCart(ctx, cartReq(restID, CartItem{ItemID: upper, Quantity: 1}))
	ae = errx.As(err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Item "+upper+" not found", ae.Message)
}

func TestCreateReceipt(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	svc := newTestService(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "rcpt_000000000001" }),
	)

	rc, err := svc.CreateReceipt(context.Background(), ReceiptRequest{
		CartRequest:  cartReq(restID, CartItem{ItemID: burgerID, Quantity: 2}, CartItem{ItemID: friesID, Quantity: 1}),
		DeliveryID:   "D-1",
		CustomerName: "Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "rcpt_000000000001", rc.ReceiptID)
	assert.Equal(t, fixed, rc.CreatedAt)
	assert.InDelta(t, 2.63, rc.Tax, 1e-9)
	assert.InDelta(t, 36.60, rc.Total, 1e-9)
	require.NotNil(t, rc.DeliveryID)
	assert.Equal(t, "D-1", *rc.DeliveryID)
	assert.Nil(t, rc.CustomerEmail)
}

func TestDefaultReceiptID(t *testing.T) {
	svc := newTestService()
	rc, err := svc.CreateReceipt(context.Background(), ReceiptRequest{
		CartRequest: cartReq(restID, CartItem{ItemID: friesID, Quantity: 1}),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^rcpt_[0-9a-f]{12}$`, rc.ReceiptID)
}

func TestMenuAndLookups(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	menu, err := svc.GetMenu(ctx, restID)
	require.NoError(t, err)
	assert.Equal(t, 2, menu.TotalItems)
	assert.Equal(t, 12.99, menu.Items[0].Price)

	_, err = svc.GetMenu(ctx, "nope")
	assert.True(t, errx.IsKind(err, errx.KindNotFound))

	item, err := svc.GetMenuItem(ctx, soupID)
	require.NoError(t, err)
	assert.Equal(t, "Market price", item.Price)

	_, err = svc.GetMenuItem(ctx, "nope")
	assert.Equal(t, MsgItemNotFound, errx.As(err).Message)

	r, err := svc.GetRestaurantByStoreID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 25, r.ETA)
	assert.Equal(t, 3000, r.NumberOfRatings)
	assert.Equal(t, "$$", r.PriceRange)
	assert.Equal(t, 2.99, r.DeliveryFee)

	_, err = svc.GetRestaurantByStoreID(ctx, "missing")
	assert.True(t, errx.IsKind(err, errx.KindNotFound))
}

func TestListRestaurants(t *testing.T) {
	svc := newTestService()
	list, err := svc.ListRestaurants(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, list.Restaurants, 1)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 1, list.Limit)
}

func TestCartRequestValidate(t *testing.T) {
	err := cartReq(restID, CartItem{ItemID: burgerID, Quantity: 0}).Validate()
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindValidation))
	assert.Contains(t, err.Error(), "items[0].quantity must be at least 1")

	err = cartReq(restID).Validate()
	require.Error(t, err)

	assert.NoError(t, cartReq(restID, CartItem{ItemID: burgerID, Quantity: 1}).Validate())
}
