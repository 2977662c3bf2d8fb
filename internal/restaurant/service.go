package restaurant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danomnoms/server/internal/catalog"
	"github.com/danomnoms/server/internal/core"
	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/normalize"
	logx "github.com/danomnoms/server/pkg/logger"
)

const (
	MsgRestaurantNotFound = "Restaurant not found"
	MsgItemNotFound       = "Item not found"
	MsgItemsInvalid       = "One or more items not found or invalid"
)

// Service exposes catalog reads and order pricing.
type Service struct {
	repo  catalog.Repository
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the receipt id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(repo catalog.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return core.NewShortID("rcpt_") },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) ListRestaurants(ctx context.Context, limit, skip int) (*RestaurantList, error) {
	rows, err := s.repo.ListRestaurants(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	out := &RestaurantList{
		Restaurants: make([]Restaurant, 0, len(rows)),
		Total:       total,
		Limit:       limit,
		Skip:        skip,
	}
	for _, r := range rows {
		out.Restaurants = append(out.Restaurants, newRestaurant(r))
	}
	return out, nil
}

func (s *Service) GetRestaurantByStoreID(ctx context.Context, storeID string) (*Restaurant, error) {
	r, err := s.repo.GetRestaurantByStoreID(ctx, storeID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, errx.NotFound(MsgRestaurantNotFound)
	}
	if err != nil {
		return nil, err
	}
	view := newRestaurant(*r)
	return &view, nil
}

func (s *Service) GetMenu(ctx context.Context, restaurantID string) (*Menu, error) {
	r, err := s.repo.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, errx.NotFound(MsgRestaurantNotFound)
	}
	items, err := s.repo.GetMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, errx.Unexpected(err, fmt.Sprintf("Error fetching menu: %v", err))
	}

	menu := &Menu{
		RestaurantID:   restaurantID,
		RestaurantName: optional(r.Name),
		Items:          make([]MenuItem, 0, len(items)),
	}
	for _, it := range items {
		menu.Items = append(menu.Items, newMenuItem(it))
	}
	menu.TotalItems = len(menu.Items)
	return menu, nil
}

func (s *Service) GetMenuItem(ctx context.Context, itemID string) (*MenuItem, error) {
	it, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, errx.NotFound(MsgItemNotFound)
	}
	view := newMenuItem(*it)
	return &view, nil
}

func (s *Service) BuildCart(ctx context.Context, req CartRequest) (*Cart, error) {
	rest, p, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Cart{
		RestaurantID:   req.RestaurantID,
		RestaurantName: optional(rest.Name),
		Items:          p.lines,
		Subtotal:       round2(p.subtotal),
		DeliveryFee:    p.feeField(),
		Total:          p.cartTotal(),
	}, nil
}

func (s *Service) CostEstimate(ctx context.Context, req CartRequest) (*CostEstimate, error) {
	rest, p, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}
	tax := round2(p.tax())
	return &CostEstimate{
		RestaurantID:   req.RestaurantID,
		RestaurantName: optional(rest.Name),
		Subtotal:       round2(p.subtotal),
		DeliveryFee:    p.feeField(),
		EstimatedTotal: p.estimatedTotal(),
		EstimatedTax:   &tax,
	}, nil
}

func (s *Service) CreateReceipt(ctx context.Context, req ReceiptRequest) (*Receipt, error) {
	rest, p, err := s.price(ctx, req.CartRequest)
	if err != nil {
		return nil, err
	}
	rc := &Receipt{
		ReceiptID:       s.newID(),
		CreatedAt:       s.now().UTC().Truncate(time.Second),
		RestaurantID:    req.RestaurantID,
		RestaurantName:  optional(rest.Name),
		Items:           p.lines,
		Subtotal:        round2(p.subtotal),
		DeliveryFee:     p.feeField(),
		Tax:             round2(p.tax()),
		Total:           p.estimatedTotal(),
		DeliveryID:      optional(req.DeliveryID),
		CustomerName:    optional(req.CustomerName),
		CustomerEmail:   optional(req.CustomerEmail),
		CustomerPhone:   optional(req.CustomerPhone),
		DeliveryAddress: optional(req.DeliveryAddress),
	}
	logx.Info().
		Str("receipt_id", rc.ReceiptID).
		Str("restaurant_id", rc.RestaurantID).
		Float64("total", rc.Total).
		Msg("receipt created")
	return rc, nil
}

// price resolves the restaurant and items and accumulates the unrounded subtotal.
// A count mismatch from the batch lookup and a per-line miss are separate failures.
func (s *Service) price(ctx context.Context, req CartRequest) (*catalog.Restaurant, priced, error) {
	rest, err := s.repo.GetRestaurantByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, priced{}, errx.NotFound(MsgRestaurantNotFound)
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ItemID)
	}
	found, err := s.repo.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, priced{}, err
	}
	if len(found) != len(ids) {
		return nil, priced{}, errx.Validation(MsgItemsInvalid)
	}

	byID := make(map[string]catalog.MenuItem, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}

	p := priced{lines: make([]CartItemDetail, 0, len(req.Items))}
	for _, line := range req.Items {
		it, ok := byID[line.ItemID]
		if !ok {
			return nil, priced{}, errx.Validation(fmt.Sprintf("Item %s not found", line.ItemID))
		}
		unit := normalize.PriceAmount(it.Price)
		sub := unit * float64(line.Quantity)
		p.subtotal += sub
		p.lines = append(p.lines, CartItemDetail{
			ItemID:      line.ItemID,
			Name:        optional(it.Name),
			Description: optional(it.Description),
			Price:       unit,
			Quantity:    line.Quantity,
			Subtotal:    sub,
		})
	}
	p.fee = normalize.DeliveryFeeAmount(rest.DeliveryFee)
	return rest, p, nil
}
