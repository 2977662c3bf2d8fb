package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/danomnoms/server/internal/agent/model"
	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/delivery"
	"github.com/danomnoms/server/internal/restaurant"
	"github.com/gorilla/mux"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000

	MsgAgentDisabled = "Agent is not configured: GEMINI_API_KEY is not set"
)

type RestaurantService interface {
	ListRestaurants(ctx context.Context, limit, skip int) (*restaurant.RestaurantList, error)
	GetRestaurantByStoreID(ctx context.Context, storeID string) (*restaurant.Restaurant, error)
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

type ChatAgent interface {
	Chat(ctx context.Context, in model.ChatInput) (*model.ChatOutput, error)
}

// Server holds the HTTP handlers. A nil agent disables the chat endpoint.
type Server struct {
	restaurants RestaurantService
	deliveries  DeliveryService
	agent       ChatAgent
}

func NewServer(restaurants RestaurantService, deliveries DeliveryService, agent ChatAgent) *Server {
	return &Server{restaurants: restaurants, deliveries: deliveries, agent: agent}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"agent":  s.agent != nil,
	})
}

func (s *Server) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", DefaultListLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	skip, err := intQuery(r, "skip", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if limit < 1 || limit > MaxListLimit {
		writeError(w, r, errx.Validation(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit)))
		return
	}
	if skip < 0 {
		writeError(w, r, errx.Validation("skip must be at least 0"))
		return
	}

	list, err := s.restaurants.ListRestaurants(r.Context(), limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRestaurantByStore(w http.ResponseWriter, r *http.Request) {
	res, err := s.restaurants.GetRestaurantByStoreID(r.Context(), mux.Vars(r)["store_id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.restaurants.GetMenu(r.Context(), mux.Vars(r)["restaurant_id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (s *Server) handleMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.restaurants.GetMenuItem(r.Context(), mux.Vars(r)["item_id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	var req restaurant.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	cart, err := s.restaurants.BuildCart(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleCostEstimate(w http.ResponseWriter, r *http.Request) {
	var req restaurant.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	est, err := s.restaurants.CostEstimate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	var req restaurant.ReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	receipt, err := s.restaurants.CreateReceipt(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleCreateDelivery(w http.ResponseWriter, r *http.Request) {
	var req delivery.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.deliveries.CreateDelivery(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleTrackDelivery(w http.ResponseWriter, r *http.Request) {
	d, err := s.deliveries.TrackDelivery(r.Context(), mux.Vars(r)["external_delivery_id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.agent == nil {
		writeError(w, r, errx.Config(MsgAgentDisabled))
		return
	}
	var in model.ChatInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := s.agent.Chat(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errx.Validation(fmt.Sprintf("%s must be an integer", key))
	}
	return n, nil
}
